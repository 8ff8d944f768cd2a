package stats

import (
	"eduboard/internal/models"
)

// SkillBand — балл по одному отслеживаемому навыку
type SkillBand struct {
	Skill string  `json:"skill"`
	Band  float64 `json:"band"`
}

// ProgressPoint — точка серии прогресса: подпись даты и балл за задание
type ProgressPoint struct {
	Label string  `json:"label"`
	Band  float64 `json:"band"`
}

// StudentStats — сводка по одному ученику
type StudentStats struct {
	StudentID      int64           `json:"student_id"`
	TotalScore     int             `json:"total_score"`
	TotalMax       int             `json:"total_max"`
	TotalTasks     int             `json:"total_tasks"`
	CompletedTasks int             `json:"completed_tasks"`
	PendingTasks   int             `json:"pending_tasks"`
	Percentage     float64         `json:"percentage"`
	OverallBand    float64         `json:"overall_band"`
	SkillBands     []SkillBand     `json:"skill_bands"`
	Progress       []ProgressPoint `json:"progress"`
}

// Participation возвращает долю выполненных заданий в процентах
func (s StudentStats) Participation() float64 {
	if s.TotalTasks == 0 {
		return 0
	}
	return float64(s.CompletedTasks) / float64(s.TotalTasks) * 100
}

// GroupStats — сводка по группе
type GroupStats struct {
	GroupID          int64   `json:"group_id"`
	GroupName        string  `json:"group_name"`
	StudentCount     int     `json:"student_count"`
	AvgBand          float64 `json:"avg_band"`
	AvgParticipation float64 `json:"avg_participation"`
}

// ForStudent считает сводку ученика по недельной доске и таблице баллов.
// Выполненным считается задание с сохраненным баллом больше нуля;
// нулевой или отсутствующий балл идет в невыполненные. Максимум задания
// берется через EffectiveMaxScore, деления на ноль не возникает.
func ForStudent(studentID int64, board models.TaskBoard, scores models.ScoreTable) StudentStats {
	st := StudentStats{StudentID: studentID}

	skillScore := make(map[string]int, len(models.Skills))
	skillMax := make(map[string]int, len(models.Skills))

	for _, task := range board.Ordered() {
		st.TotalTasks++

		value, ok := scores[models.ScoreKey{StudentID: studentID, TaskID: task.ID}]
		if !ok || value <= 0 {
			st.PendingTasks++
			continue
		}
		max := task.EffectiveMaxScore()

		st.CompletedTasks++
		st.TotalScore += value
		st.TotalMax += max

		if skill, tracked := models.SkillByWeekday[task.Weekday]; tracked {
			skillScore[skill] += value
			skillMax[skill] += max
		}

		st.Progress = append(st.Progress, ProgressPoint{
			Label: task.DateLabel(),
			Band:  Band(float64(value) / float64(max) * 100),
		})
	}

	if st.TotalMax > 0 {
		st.Percentage = float64(st.TotalScore) / float64(st.TotalMax) * 100
	}
	st.OverallBand = Band(st.Percentage)

	st.SkillBands = make([]SkillBand, 0, len(models.Skills))
	for _, skill := range models.Skills {
		sb := SkillBand{Skill: skill}
		if skillMax[skill] > 0 {
			sb.Band = Band(float64(skillScore[skill]) / float64(skillMax[skill]) * 100)
		}
		st.SkillBands = append(st.SkillBands, sb)
	}

	return st
}

// ForGroup агрегирует сводки учеников группы.
// Пустая группа дает нулевую сводку без ошибок.
func ForGroup(group models.Group, board models.TaskBoard, scores models.ScoreTable) GroupStats {
	gs := GroupStats{GroupID: group.ID, GroupName: group.Name}

	var bandSum, participationSum float64
	for _, studentID := range group.StudentIDs() {
		st := ForStudent(studentID, board, scores)
		bandSum += st.OverallBand
		participationSum += st.Participation()
		gs.StudentCount++
	}

	if gs.StudentCount > 0 {
		gs.AvgBand = bandSum / float64(gs.StudentCount)
		gs.AvgParticipation = participationSum / float64(gs.StudentCount)
	}
	return gs
}
