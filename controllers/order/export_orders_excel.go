package orderControllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/tealeg/xlsx"
	"gorm.io/gorm"

	"github.com/Alamatniige/izaj-ecommerce-sub001/models"
	"github.com/Alamatniige/izaj-ecommerce-sub001/pricing"
)

// GET /admin/orders/export (API key)
func ExportOrdersToExcel(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var orders []models.Order
		if err := db.Preload("Items").Order("created_at DESC").Find(&orders).Error; err != nil {
			logrus.WithError(err).Error("failed to fetch orders for export")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
			return
		}

		file := xlsx.NewFile()
		sheet, err := file.AddSheet("Orders")
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel sheet"})
			return
		}

		// Header row
		headers := []string{
			"OrderNumber", "UserID", "Status", "PaymentMethod", "Items",
			"TotalAmount", "ShippingFee", "GrandTotal", "RecipientName",
			"DeliveryAddress", "TrackingNumber", "CancellationReason", "CreatedAt",
		}
		headerRow := sheet.AddRow()
		for _, h := range headers {
			headerRow.AddCell().SetValue(h)
		}

		// Data rows
		for _, o := range orders {
			status, err := models.ParseOrderStatus(string(o.Status))
			if err != nil {
				logrus.WithFields(logrus.Fields{
					"order_id": o.ID,
					"status":   string(o.Status),
				}).Error("skipping order with status outside the enumeration")
				continue
			}

			itemCount := 0
			for _, item := range o.Items {
				itemCount += item.Quantity
			}

			row := sheet.AddRow()
			row.AddCell().SetValue(o.OrderNumber)
			row.AddCell().SetValue(o.UserID)
			row.AddCell().SetValue(string(status))
			row.AddCell().SetValue(o.PaymentMethod)
			row.AddCell().SetValue(itemCount)
			row.AddCell().SetValue(o.TotalAmount)
			row.AddCell().SetValue(o.ShippingFee)
			row.AddCell().SetValue(pricing.Total(o.TotalAmount, o.ShippingFee))
			row.AddCell().SetValue(o.RecipientName)
			row.AddCell().SetValue(o.DeliveryAddress)
			row.AddCell().SetValue(o.TrackingNumber)
			row.AddCell().SetValue(o.CancellationReason)
			row.AddCell().SetValue(o.CreatedAt.Format("2006-01-02 15:04:05"))
		}

		// Set response headers for download
		c.Header("Content-Disposition", "attachment; filename=orders.xlsx")
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Header("Content-Transfer-Encoding", "binary")
		c.Header("Expires", "0")

		if err := file.Write(c.Writer); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to write Excel file"})
			return
		}
	}
}
