package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"scriptoria-api/internal/domain/entity"
)

// Suggestion 生成页的快速预设
type Suggestion struct {
	Name string
	entity.FormData
}

var quickSuggestions = []Suggestion{
	{
		Name: "Neo-noir thriller",
		FormData: entity.FormData{
			Genre:       "Neo-noir Thriller",
			Tone:        "Tense, rain-soaked, morally grey",
			Logline:     "A disgraced insurance investigator uncovers a staged drowning that leads back to her own family.",
			Setting:     "A fading port city",
			Era:         "Late 1990s",
			VisualStyle: "Neon reflections, deep shadows, anamorphic flares",
			Budget:      entity.BudgetMedium,
		},
	},
	{
		Name: "Intimate drama",
		FormData: entity.FormData{
			Genre:       "Family Drama",
			Tone:        "Warm, bittersweet",
			Logline:     "Three estranged siblings return to their late father's orchard to decide whether to sell it before the harvest.",
			Setting:     "A rural apple orchard",
			Era:         "Contemporary",
			VisualStyle: "Natural light, handheld, muted autumn palette",
			Budget:      entity.BudgetLow,
		},
	},
	{
		Name: "Space epic",
		FormData: entity.FormData{
			Genre:       "Science Fiction",
			Tone:        "Awe-struck, lonely, hopeful",
			Logline:     "The last engineer on a generation ship must wake the crew early when the ship begins rewriting its own course.",
			Setting:     "A generation ship between stars",
			Era:         "Far future",
			VisualStyle: "Monumental symmetry, cold blues against warm practical light",
			Budget:      entity.BudgetHigh,
		},
	},
}

type budgetOption struct {
	Value    entity.Budget
	Label    string
	Selected bool
}

type sectionView struct {
	Key   entity.SectionKey
	Title string
}

// UIHandler 渲染嵌入的客户端页面
type UIHandler struct {
	appName string
}

func NewUIHandler(appName string) *UIHandler {
	if appName == "" {
		appName = "Scriptoria"
	}
	return &UIHandler{appName: appName}
}

// Index 首页
func (h *UIHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.page("Home"))
}

// Generate 蓝图表单页
func (h *UIHandler) Generate(c *gin.Context) {
	data := h.page("Film Blueprint")

	budgets := make([]budgetOption, 0, 3)
	for _, b := range []entity.Budget{entity.BudgetLow, entity.BudgetMedium, entity.BudgetHigh} {
		budgets = append(budgets, budgetOption{Value: b, Label: b.Label(), Selected: b == entity.BudgetMedium})
	}
	sections := make([]sectionView, 0, len(entity.SectionKeys))
	for _, k := range entity.SectionKeys {
		sections = append(sections, sectionView{Key: k, Title: k.Title()})
	}

	data["Budgets"] = budgets
	data["Sections"] = sections
	data["Suggestions"] = quickSuggestions
	data["Defaults"] = entity.FormData{}.WithDefaults()
	c.HTML(http.StatusOK, "generate.html", data)
}

// Continue 续写页
func (h *UIHandler) Continue(c *gin.Context) {
	c.HTML(http.StatusOK, "continue.html", h.page("Continue a Story"))
}

func (h *UIHandler) page(title string) gin.H {
	return gin.H{
		"AppName": h.appName,
		"Title":   title,
	}
}
