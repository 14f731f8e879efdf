package tools

import (
	"horticulture-assistant/internal/agent"
	"horticulture-assistant/internal/imagegen"
	"horticulture-assistant/internal/knowledge"
	"horticulture-assistant/internal/market"
	"horticulture-assistant/internal/session"
	"horticulture-assistant/pkg/log"
)

// Deps holds everything the tool set needs.
type Deps struct {
	Market    market.UseCase
	Knowledge knowledge.UseCase
	Images    imagegen.UseCase
	Sessions  *session.Manager
	Logger    log.Logger

	// FlashSaleDays is the default expiry window for flash sale suggestions.
	// Zero means the built-in default.
	FlashSaleDays int
}

// NewRegistry builds a registry with the full marketplace tool set.
func NewRegistry(deps Deps) *agent.Registry {
	r := agent.NewRegistry(deps.Logger)
	r.Register(NewParseDateTool())
	r.Register(NewCurrentTimeTool())
	r.Register(NewRegisterUserTool(deps.Market, deps.Sessions))
	r.Register(NewSearchProductsTool(deps.Market))
	r.Register(NewPricingInsightsTool(deps.Market))
	r.Register(NewRAGQueryTool(deps.Knowledge, deps.Market))
	r.Register(NewCreateOrderTool(deps.Market))
	r.Register(NewAddInventoryTool(deps.Market, deps.Images, deps.Logger))
	r.Register(NewGenerateImageTool(deps.Market, deps.Images))
	r.Register(NewSupplierStockTool(deps.Market))
	r.Register(NewSupplierScheduleTool(deps.Market))
	r.Register(NewFlashSaleTool(deps.Market, deps.FlashSaleDays))
	r.Register(NewCustomerOrdersTool(deps.Market))
	return r
}
