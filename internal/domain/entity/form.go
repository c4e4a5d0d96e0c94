// Package entity 定义领域实体
package entity

import "strings"

// Budget 预算档位
type Budget string

const (
	BudgetLow    Budget = "low"
	BudgetMedium Budget = "medium"
	BudgetHigh   Budget = "high"
)

var budgetLabels = map[Budget]string{
	BudgetLow:    "Low Budget",
	BudgetMedium: "Medium Budget",
	BudgetHigh:   "High Budget",
}

// Label 返回预算展示文案，仅精确匹配，其余值回落到中等预算
func (b Budget) Label() string {
	if label, ok := budgetLabels[b]; ok {
		return label
	}
	return budgetLabels[BudgetMedium]
}

// Valid 是否为已知档位
func (b Budget) Valid() bool {
	_, ok := budgetLabels[b]
	return ok
}

// 表单字段为空时代入的默认值
const (
	DefaultGenre       = "Mystery"
	DefaultTone        = "Melancholic"
	DefaultLogline     = "A story waiting to be told."
	DefaultSetting     = "An unnamed city"
	DefaultEra         = "Contemporary"
	DefaultVisualStyle = "Naturalistic"
)

// FormData 电影概念表单
type FormData struct {
	Genre       string `json:"genre"`
	Tone        string `json:"tone"`
	Logline     string `json:"logline"`
	Setting     string `json:"setting"`
	Era         string `json:"era"`
	VisualStyle string `json:"visualStyle"`
	Budget      Budget `json:"budget"`
}

// WithDefaults 返回空字段已填充默认值的副本
func (f FormData) WithDefaults() FormData {
	return FormData{
		Genre:       orDefault(f.Genre, DefaultGenre),
		Tone:        orDefault(f.Tone, DefaultTone),
		Logline:     orDefault(f.Logline, DefaultLogline),
		Setting:     orDefault(f.Setting, DefaultSetting),
		Era:         orDefault(f.Era, DefaultEra),
		VisualStyle: orDefault(f.VisualStyle, DefaultVisualStyle),
		Budget:      f.Budget,
	}
}

func orDefault(v, def string) string {
	if s := strings.TrimSpace(v); s != "" {
		return s
	}
	return def
}
