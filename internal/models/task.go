package models

import (
	"time"
)

// Weekday определяет день недели, к которому привязано задание
type Weekday string

const (
	Monday    Weekday = "Monday"
	Tuesday   Weekday = "Tuesday"
	Wednesday Weekday = "Wednesday"
	Thursday  Weekday = "Thursday"
	Friday    Weekday = "Friday"
	Saturday  Weekday = "Saturday"
	Sunday    Weekday = "Sunday"
)

// Weekdays задает канонический порядок дней на недельной доске
var Weekdays = []Weekday{Monday, Tuesday, Wednesday, Thursday, Friday, Saturday, Sunday}

// IsValid отвечает, является ли значение известным днем недели
func (w Weekday) IsValid() bool {
	for _, d := range Weekdays {
		if w == d {
			return true
		}
	}
	return false
}

// Short возвращает трехбуквенное имя дня для подписей на графиках
func (w Weekday) Short() string {
	if len(w) < 3 {
		return string(w)
	}
	return string(w[:3])
}

// Навыки, закрепленные за днями недели. Суббота не отслеживается.
const (
	SkillListening = "Listening"
	SkillReading   = "Reading"
	SkillWriting   = "Writing"
	SkillSpeaking  = "Speaking"
	SkillMockTest  = "Mock Test"
	SkillReview    = "Review"
)

// Skills задает фиксированный порядок навыков в отчетах
var Skills = []string{SkillListening, SkillReading, SkillWriting, SkillSpeaking, SkillMockTest, SkillReview}

// SkillByWeekday связывает день недели с отслеживаемым навыком
var SkillByWeekday = map[Weekday]string{
	Monday:    SkillListening,
	Tuesday:   SkillReading,
	Wednesday: SkillWriting,
	Thursday:  SkillSpeaking,
	Friday:    SkillMockTest,
	Sunday:    SkillReview,
}

// DefaultTaskMaxScore — единый максимум балла задания.
// Используется и как значение по умолчанию при создании, и как запасной
// максимум при расчетах, если у задания он не задан или равен нулю.
const DefaultTaskMaxScore = 40

// Task представляет задание на недельной доске.
// ID выдается из миллисекундного времени создания, поэтому сортировка по ID
// приближенно повторяет порядок создания.
// GroupID — слабая ссылка: nil означает «видно всем группам».
type Task struct {
	ID        int64     `json:"id" gorm:"primaryKey"`
	Weekday   Weekday   `json:"weekday" gorm:"type:text;not null;index"`
	Title     string    `json:"title" gorm:"type:text;not null"`
	MaxScore  int       `json:"max_score"`
	Deadline  string    `json:"deadline" gorm:"type:text"` // "HH:MM"
	Date      time.Time `json:"date"`
	GroupID   *int64    `json:"group_id"`
	CreatedBy int64     `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// EffectiveMaxScore возвращает максимум балла с учетом запасного значения
func (t *Task) EffectiveMaxScore() int {
	if t.MaxScore <= 0 {
		return DefaultTaskMaxScore
	}
	return t.MaxScore
}

// DateLabel возвращает короткую подпись даты для серии прогресса
func (t *Task) DateLabel() string {
	if t.Date.IsZero() {
		return t.Weekday.Short()
	}
	return t.Date.Format("Jan 2")
}

// TaskBoard — недельная доска заданий: день недели → упорядоченный список
type TaskBoard map[Weekday][]Task

// Ordered разворачивает доску в одну последовательность:
// дни в каноническом порядке, внутри дня — порядок добавления
func (b TaskBoard) Ordered() []Task {
	var out []Task
	for _, day := range Weekdays {
		out = append(out, b[day]...)
	}
	return out
}

// Count возвращает число заданий на доске
func (b TaskBoard) Count() int {
	n := 0
	for _, day := range Weekdays {
		n += len(b[day])
	}
	return n
}
