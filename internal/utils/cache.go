package utils

import (
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/patrickmn/go-cache"
)

// Cache 全局缓存实例（目录详情等小对象）
var Cache *cache.Cache

// InitCache 初始化缓存
func InitCache() {
	// 默认过期时间10分钟，清理间隔30分钟
	Cache = cache.New(10*time.Minute, 30*time.Minute)
}

// CacheGet 获取缓存值
func CacheGet(key string) (interface{}, bool) {
	return Cache.Get(key)
}

// CacheSet 设置缓存值
func CacheSet(key string, value interface{}, duration time.Duration) {
	Cache.Set(key, value, duration)
}

// CacheDelete 删除缓存
func CacheDelete(key string) {
	Cache.Delete(key)
}

// lruItem 包装实际数据，附带过期时间
type lruItem[T any] struct {
	value     T
	expiredAt time.Time
}

// LRUCache 带 TTL 的定容缓存，目录搜索结果专用：
// 条数被 LRU 限死，过期数据读取时剔除。
type LRUCache[T any] struct {
	storage *lru.Cache[string, lruItem[T]]
	ttl     time.Duration
}

// NewLRUCache size 是最大缓存条数，ttl 是数据有效期
func NewLRUCache[T any](size int, ttl time.Duration) *LRUCache[T] {
	// lru.New 是线程安全的
	c, _ := lru.New[string, lruItem[T]](size)
	return &LRUCache[T]{
		storage: c,
		ttl:     ttl,
	}
}

// Set 写入（已存在则覆盖）
func (c *LRUCache[T]) Set(key string, value T) {
	c.storage.Add(key, lruItem[T]{
		value:     value,
		expiredAt: time.Now().Add(c.ttl),
	})
}

// Get 读取，过期即删除并视为未命中
func (c *LRUCache[T]) Get(key string) (T, bool) {
	var zero T
	item, ok := c.storage.Get(key)
	if !ok {
		return zero, false
	}
	if time.Now().After(item.expiredAt) {
		c.storage.Remove(key)
		return zero, false
	}
	return item.value, true
}

// Len 当前条数
func (c *LRUCache[T]) Len() int {
	return c.storage.Len()
}
