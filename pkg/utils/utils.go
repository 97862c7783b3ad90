package utils

import "math"

// CentEpsilon порог, ниже которого остаток считается погашенным
const CentEpsilon = 0.005

// Round2 округляет число до копеек (2 знака после запятой)
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}

// IsFinite проверяет, является ли число конечным
func IsFinite(value float64) bool {
	return !math.IsInf(value, 0) && !math.IsNaN(value)
}

// NonNegative возвращает value, либо 0 для отрицательных значений и NaN
func NonNegative(value float64) float64 {
	if !(value > 0) {
		return 0
	}
	return value
}

// SnapToZero обнуляет значения меньше CentEpsilon
func SnapToZero(value float64) float64 {
	if value < CentEpsilon {
		return 0
	}
	return value
}
