package models

import (
	"time"
)

// Score представляет балл ученика за задание.
// Пара (student_id, task_id) уникальна — по одной клетке на ученика и задание.
type Score struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	StudentID int64     `json:"student_id" gorm:"not null;uniqueIndex:idx_student_task"`
	TaskID    int64     `json:"task_id" gorm:"not null;uniqueIndex:idx_student_task"`
	Value     int       `json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ScoreKey — составной ключ таблицы баллов.
// Структура вместо склейки строк: никакого разбора разделителей.
type ScoreKey struct {
	StudentID int64
	TaskID    int64
}

// ScoreTable — разреженная таблица баллов в памяти
type ScoreTable map[ScoreKey]int

// BuildScoreTable собирает таблицу из строк базы
func BuildScoreTable(rows []Score) ScoreTable {
	table := make(ScoreTable, len(rows))
	for _, row := range rows {
		table[ScoreKey{StudentID: row.StudentID, TaskID: row.TaskID}] = row.Value
	}
	return table
}
