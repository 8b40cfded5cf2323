package availability

import (
	"sync"

	"github.com/vitaalpraktijk/VP-AvailabilityService/internal/domain"
)

// ruleCacheEntry кэшированный результат чтения правила.
// Отсутствие правила ("день закрыт") кэшируется так же, как его наличие
type ruleCacheEntry struct {
	rule *domain.WorkingHoursRule
}

// RuleCache in-memory кэш правил рабочих часов по дню недели.
// Единственное разделяемое изменяемое состояние сервиса: правила неизменны
// в течение жизни процесса, пока админ явно не сбросит кэш через Clear.
// Передается в сервис явно, а не как глобальное состояние модуля -
// изолированные инстансы позволяют параллельные тесты
type RuleCache struct {
	mu      sync.RWMutex
	entries map[int]ruleCacheEntry
}

// NewRuleCache создает пустой кэш правил
func NewRuleCache() *RuleCache {
	return &RuleCache{entries: make(map[int]ruleCacheEntry)}
}

// Get возвращает кэшированное правило дня недели.
// Второй результат false, если день еще не читался из хранилища
func (c *RuleCache) Get(dayOfWeek int) (*domain.WorkingHoursRule, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.entries[dayOfWeek]
	return entry.rule, ok
}

// Set кэширует результат чтения правила (rule может быть nil - "правила нет")
func (c *RuleCache) Set(dayOfWeek int, rule *domain.WorkingHoursRule) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[dayOfWeek] = ruleCacheEntry{rule: rule}
}

// Clear сбрасывает кэш; вызывается при каждом изменении правил в хранилище
func (c *RuleCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[int]ruleCacheEntry)
}

// Len возвращает количество закэшированных дней недели
func (c *RuleCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	return len(c.entries)
}
