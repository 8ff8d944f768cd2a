package stats

import (
	"eduboard/internal/models"
)

// MaxComparisonGroups — предел числа групп в сравнении
const MaxComparisonGroups = 4

// Overview — сводка по классу для главной панели
type Overview struct {
	TotalStudents       int     `json:"total_students"`
	WeekTaskCount       int     `json:"week_task_count"`
	TotalTasks          int     `json:"total_tasks"`
	CompletedTasks      int     `json:"completed_tasks"`
	PendingTasks        int     `json:"pending_tasks"`
	AverageScorePercent float64 `json:"average_score_percent"`
}

// Comparison — матрица сравнения выбранных групп
type Comparison struct {
	Groups []GroupStats `json:"groups"`
}

// ClassOverview считает сводку по всем переданным ученикам.
// Средний процент считается от сумм totalScore/totalMax по всем ученикам,
// а не как среднее их процентов: взвешивание по объему заданий намеренное.
// TotalTasks — число клеток «ученик × задание» на доске.
func ClassOverview(students []models.User, board models.TaskBoard, scores models.ScoreTable) Overview {
	ov := Overview{WeekTaskCount: board.Count()}

	var scoreSum, maxSum int
	for _, s := range students {
		if s.Role != models.RoleStudent {
			continue
		}
		st := ForStudent(s.ID, board, scores)
		ov.TotalStudents++
		ov.TotalTasks += st.TotalTasks
		ov.CompletedTasks += st.CompletedTasks
		ov.PendingTasks += st.PendingTasks
		scoreSum += st.TotalScore
		maxSum += st.TotalMax
	}

	if maxSum > 0 {
		ov.AverageScorePercent = float64(scoreSum) / float64(maxSum) * 100
	}
	return ov
}

// CompareGroups собирает матрицу сравнения по выбранным группам.
// Меньше двух групп — сравнения нет (ok=false); больше четырех —
// лишние выборы молча отбрасываются, остаются первые четыре.
// Неизвестные идентификаторы пропускаются.
func CompareGroups(selectedIDs []int64, groupStats []GroupStats) (*Comparison, bool) {
	if len(selectedIDs) > MaxComparisonGroups {
		selectedIDs = selectedIDs[:MaxComparisonGroups]
	}

	byID := make(map[int64]GroupStats, len(groupStats))
	for _, gs := range groupStats {
		byID[gs.GroupID] = gs
	}

	picked := make([]GroupStats, 0, len(selectedIDs))
	for _, id := range selectedIDs {
		if gs, ok := byID[id]; ok {
			picked = append(picked, gs)
		}
	}

	if len(picked) < 2 {
		return nil, false
	}
	return &Comparison{Groups: picked}, true
}

// WeakestSkill возвращает навык с минимальным ненулевым баллом.
// Если данных нет ни по одному навыку, ok=false — первый навык
// по умолчанию не подставляется.
func WeakestSkill(skillBands []SkillBand) (string, bool) {
	var name string
	var min float64
	for _, sb := range skillBands {
		if sb.Band <= 0 {
			continue
		}
		if name == "" || sb.Band < min {
			name = sb.Skill
			min = sb.Band
		}
	}
	return name, name != ""
}
