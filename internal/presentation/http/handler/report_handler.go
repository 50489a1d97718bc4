package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/thelakshaywalia/advance-inventory-manager/internal/application/service"
	"github.com/thelakshaywalia/advance-inventory-manager/internal/presentation/http/dto/response"
)

// ReportHandler serves the business analysis endpoint
type ReportHandler struct {
	ledgerService *service.LedgerService
}

// NewReportHandler creates a new report handler
func NewReportHandler(ledgerService *service.LedgerService) *ReportHandler {
	return &ReportHandler{ledgerService: ledgerService}
}

// Analysis handles GET /reports/analysis
func (h *ReportHandler) Analysis(c *gin.Context) {
	summary, err := h.ledgerService.GetShopSummary(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Analysis generated successfully", gin.H{
		"revenue":              float64(summary.Revenue) / 100,
		"cost_of_goods":        float64(summary.CostOfGoods) / 100,
		"profit":               float64(summary.GrossProfit) / 100,
		"cash_sales":           float64(summary.CashSales) / 100,
		"card_sales":           float64(summary.CardSales) / 100,
		"credit_sales":         float64(summary.CreditSales) / 100,
		"payments_received":    float64(summary.PaymentsReceived) / 100,
		"total_credit_due":     float64(summary.TotalCreditDue) / 100,
		"loss_estimate":        float64(summary.LossEstimate) / 100,
		"total_inventory_cost": float64(summary.InventoryValue) / 100,
		"dead_stock":           summary.DeadStock,
	})
}
