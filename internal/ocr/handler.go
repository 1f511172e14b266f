package ocr

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler 把OCR代理暴露为HTTP接口。
// client 为nil表示密钥或endpoint未配置，请求直接返回配置错误。
type Handler struct {
	client *Client
}

// NewHandler 创建OCR处理器。
func NewHandler(client *Client) *Handler {
	return &Handler{client: client}
}

type recognizeRequest struct {
	Base64Image string `json:"base64Image"`
}

// Recognize 接收base64图片并透传CLOVA OCR的识别结果。
func (h *Handler) Recognize(c *gin.Context) {
	var body recognizeRequest
	if err := c.ShouldBindJSON(&body); err != nil || body.Base64Image == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "base64Image is required"})
		return
	}

	if h.client == nil {
		fmt.Println("OCR请求被拒绝: CLOVA OCR密钥未配置。")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server misconfiguration: CLOVA OCR secret is required"})
		return
	}

	result, err := h.client.Recognize(c.Request.Context(), body.Base64Image)
	if err != nil {
		var upstream *UpstreamError
		if errors.As(err, &upstream) {
			c.JSON(upstream.Status, gin.H{
				"error":   "CLOVA OCR error",
				"status":  upstream.Status,
				"details": upstream.Body,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "ocr request failed", "message": err.Error()})
		return
	}

	c.Data(http.StatusOK, "application/json", result)
}
