package domain

import "time"

// Table represents a single physical table
type Table struct {
	ID           int64
	RestaurantID int64
	TableNumber  string
	Capacity     int // количество мест, всегда > 0
	IsActive     bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// CombinedTable represents a named aggregate of two or more tables booked as
// a single unit. TotalCapacity хранится как вычисленная при создании сумма
// вместимостей; при аллокации она пересчитывается по живым данным столов,
// сохранённое значение - только кеш для отображения.
type CombinedTable struct {
	ID            int64
	RestaurantID  int64
	Name          string
	TableIDs      []int64
	TotalCapacity int
	IsActive      bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// LiveCapacity возвращает актуальную суммарную вместимость комбинации,
// пересчитанную по переданному снимку столов. Если какой-то стол-участник
// в снимке отсутствует, используется сохранённая сумма (консервативный fallback).
func (c *CombinedTable) LiveCapacity(tables []*Table) int {
	byID := make(map[int64]*Table, len(tables))
	for _, t := range tables {
		byID[t.ID] = t
	}

	total := 0
	for _, memberID := range c.TableIDs {
		member, ok := byID[memberID]
		if !ok {
			return c.TotalCapacity
		}
		total += member.Capacity
	}
	return total
}

// SelectionKind тип явного выбора посадки
type SelectionKind string

const (
	SelectionTable       SelectionKind = "table"
	SelectionCombination SelectionKind = "combination"
)

// TableSelection явный выбор стола или комбинации оператором
type TableSelection struct {
	Kind SelectionKind
	ID   int64
}

// AllocationStatus результат работы аллокатора
type AllocationStatus string

const (
	// AllocationAssigned выбранный стол/комбинация вмещает компанию
	AllocationAssigned AllocationStatus = "assigned"

	// AllocationAuto выбор посадки отложен до серверного авто-назначения
	AllocationAuto AllocationStatus = "auto"

	// AllocationRejected выбранная посадка не вмещает компанию
	AllocationRejected AllocationStatus = "rejected"
)

// AllocationResult результат подбора посадки для компании гостей
type AllocationResult struct {
	Status          AllocationStatus
	TableID         *int64
	CombinedTableID *int64

	// Заполняются при Status == AllocationRejected
	Reason    RejectionReason
	Required  int // размер компании
	Available int // вместимость выбранной посадки
}

// Allocate проверяет явный выбор стола или комбинации против размера компании
//
// Неактивные столы должны быть исключены из tables вызывающей стороной.
// Комбинация атомарна: она либо целиком вмещает компанию, либо отвергается,
// разбиение на отдельные столы не выполняется. Вместимость комбинации
// пересчитывается по живым данным столов (см. CombinedTable.LiveCapacity).
//
// Без явного выбора возвращается AllocationAuto: подбор конкретного стола
// выполняет серверное авто-назначение (AutoAssign) с тем же инвариантом
// вместимости.
func Allocate(partySize int, tables []*Table, combinations []*CombinedTable, sel *TableSelection) AllocationResult {
	if sel == nil {
		return AllocationResult{Status: AllocationAuto}
	}

	switch sel.Kind {
	case SelectionTable:
		for _, t := range tables {
			if t.ID != sel.ID {
				continue
			}
			if t.Capacity < partySize {
				return AllocationResult{
					Status:    AllocationRejected,
					Reason:    ReasonInsufficientCapacity,
					Required:  partySize,
					Available: t.Capacity,
				}
			}
			id := t.ID
			return AllocationResult{Status: AllocationAssigned, TableID: &id}
		}

	case SelectionCombination:
		for _, c := range combinations {
			if c.ID != sel.ID {
				continue
			}
			capacity := c.LiveCapacity(tables)
			if capacity < partySize {
				return AllocationResult{
					Status:    AllocationRejected,
					Reason:    ReasonInsufficientCapacity,
					Required:  partySize,
					Available: capacity,
				}
			}
			id := c.ID
			return AllocationResult{Status: AllocationAssigned, CombinedTableID: &id}
		}
	}

	// Выбор ссылается на несуществующую посадку: отвергаем с нулевой вместимостью
	return AllocationResult{
		Status:    AllocationRejected,
		Reason:    ReasonInsufficientCapacity,
		Required:  partySize,
		Available: 0,
	}
}

// AutoAssign выполняет серверное авто-назначение: наименьший достаточный
// свободный стол, затем наименьшая достаточная комбинация, все участники
// которой свободны. isTableFree отвечает, свободен ли одиночный стол.
// Возвращает AllocationRejected, если ни одна посадка не подходит;
// available - максимальная вместимость среди свободных посадок.
func AutoAssign(
	partySize int,
	tables []*Table,
	combinations []*CombinedTable,
	isTableFree func(tableID int64) bool,
) AllocationResult {
	bestAvailable := 0

	// Сначала одиночные столы: наименьший достаточный
	var bestTable *Table
	for _, t := range tables {
		if !t.IsActive || !isTableFree(t.ID) {
			continue
		}
		if t.Capacity > bestAvailable {
			bestAvailable = t.Capacity
		}
		if t.Capacity < partySize {
			continue
		}
		if bestTable == nil || t.Capacity < bestTable.Capacity {
			bestTable = t
		}
	}
	if bestTable != nil {
		id := bestTable.ID
		return AllocationResult{Status: AllocationAssigned, TableID: &id}
	}

	// Затем комбинации: наименьшая достаточная со всеми свободными участниками
	var (
		bestCombo    *CombinedTable
		bestComboCap int
	)
	for _, c := range combinations {
		if !c.IsActive {
			continue
		}
		free := true
		for _, memberID := range c.TableIDs {
			if !isTableFree(memberID) {
				free = false
				break
			}
		}
		if !free {
			continue
		}
		capacity := c.LiveCapacity(tables)
		if capacity > bestAvailable {
			bestAvailable = capacity
		}
		if capacity < partySize {
			continue
		}
		if bestCombo == nil || capacity < bestComboCap {
			bestCombo = c
			bestComboCap = capacity
		}
	}
	if bestCombo != nil {
		id := bestCombo.ID
		return AllocationResult{Status: AllocationAssigned, CombinedTableID: &id}
	}

	return AllocationResult{
		Status:    AllocationRejected,
		Reason:    ReasonInsufficientCapacity,
		Required:  partySize,
		Available: bestAvailable,
	}
}
