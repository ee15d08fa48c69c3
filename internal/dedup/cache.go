// Package dedup хранит идентификаторы уже отправленных товаров,
// чтобы не постить одно и то же дважды. Кэш живёт только в памяти
// процесса: после рестарта история намеренно пустая.
package dedup

import "sync"

// defaultCapacity — потолок размера кэша по умолчанию.
const defaultCapacity = 500

// Cache — ограниченное по размеру множество идентификаторов.
// При переполнении множество очищается целиком, а не вытесняется по LRU:
// очень старые товары могут быть запощены повторно, и это осознанное упрощение.
type Cache struct {
	mu       sync.Mutex
	capacity int
	ids      map[string]struct{}
}

// New создаёт кэш с заданным потолком; capacity <= 0 означает значение по умолчанию.
func New(capacity int) *Cache {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	return &Cache{
		capacity: capacity,
		ids:      make(map[string]struct{}, capacity),
	}
}

// Contains сообщает, был ли товар уже отправлен в текущую эпоху кэша.
func (c *Cache) Contains(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	_, ok := c.ids[id]
	return ok
}

// Record запоминает идентификатор. Если после вставки размер превысил
// потолок, кэш очищается полностью.
func (c *Cache) Record(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.ids[id] = struct{}{}
	if len(c.ids) > c.capacity {
		c.ids = make(map[string]struct{}, c.capacity)
	}
}

// Len возвращает текущий размер кэша.
func (c *Cache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.ids)
}
