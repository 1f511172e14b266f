package stats

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 把统计模块暴露为HTTP接口，注册在 /api/statistics 下。
type Handler struct {
	service *Service
}

// NewHandler 创建统计处理器。
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Save 保存一条使用记录。
func (h *Handler) Save(c *gin.Context) {
	var input SaveUsageInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.service.SaveUsage(input); err != nil {
		var validation *ValidationError
		if errors.As(err, &validation) {
			c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error(), "missing": validation.Missing})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "usage record saved"})
}

// Get 返回聚合统计。
func (h *Handler) Get(c *gin.Context) {
	stats, err := h.service.GetStatistics()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats)
}

// Reset 删除全部使用记录。
func (h *Handler) Reset(c *gin.Context) {
	if err := h.service.ResetStatistics(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "all usage records deleted"})
}

// Export 以CSV附件的形式导出全部使用记录。
func (h *Handler) Export(c *gin.Context) {
	csv, err := h.service.ExportCSV()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	filename := fmt.Sprintf("statistics_%s.csv", h.service.now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "text/csv", []byte(csv))
}

type dropoutRequest struct {
	Reason string `json:"reason"`
}

// Dropout 记录一次在OCR环节放弃的流程。
func (h *Handler) Dropout(c *gin.Context) {
	var body dropoutRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	if err := h.service.ReportDropout(body.Reason); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
