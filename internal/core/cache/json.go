package cache

import (
	"context"
	"encoding/json"
)

// GetOrLoadJSON 在 GetOrLoad 外包一层 JSON 编解码。
// load 返回的错误不缓存（包括 not found）。
func GetOrLoadJSON[T any](
	ctx context.Context,
	c *Cache,
	key string,
	load func(ctx context.Context) (T, error),
) (T, error) {
	var out T
	b, err := c.GetOrLoad(ctx, key, func(ctx context.Context) ([]byte, error) {
		v, e := load(ctx)
		if e != nil {
			return nil, e
		}
		return json.Marshal(v)
	})
	if err != nil {
		return out, err
	}
	if e := json.Unmarshal(b, &out); e != nil {
		return out, e
	}
	return out, nil
}
