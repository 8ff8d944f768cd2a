// Package stats содержит чистый слой производной статистики:
// перевод процентов в баллы, область видимости по ролям и сводки
// по ученикам, группам и классу. Функции не обращаются к хранилищу,
// не изменяют входные данные и безопасны для параллельных читателей.
package stats

// bandThresholds — каноническая таблица перевода процента в балл
// по шкале 0–9 с шагом 0.5. Нижние границы включительно, выигрывает
// самая высокая подходящая ступень; все, что ниже 13 — ноль.
var bandThresholds = []struct {
	Min  float64
	Band float64
}{
	{89, 9.0},
	{84, 8.5},
	{78, 8.0},
	{73, 7.5},
	{67, 7.0},
	{60, 6.5},
	{53, 6.0},
	{47, 5.5},
	{40, 5.0},
	{33, 4.5},
	{27, 4.0},
	{20, 3.5},
	{13, 3.0},
}

// Band переводит процент выполнения в балл.
// Функция определена для любого вещественного входа: значения ниже
// нижней ступени (включая отрицательные) дают 0.
func Band(percentage float64) float64 {
	for _, t := range bandThresholds {
		if percentage >= t.Min {
			return t.Band
		}
	}
	return 0
}
