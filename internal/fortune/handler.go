package fortune

import (
	"errors"
	"net/http"

	"github.com/daily-saju/fortune-backend/internal/llm"
	"github.com/gin-gonic/gin"
)

// Handler 持有内容生成服务，注册在 /api/fortune 下。
type Handler struct {
	service *Service
}

// NewHandler 创建内容生成的HTTP处理器。
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Daily 处理每日运势请求。
func (h *Handler) Daily(c *gin.Context) {
	h.generate(c, KindFortune)
}

// Subconscious 处理潜意识解读请求。
func (h *Handler) Subconscious(c *gin.Context) {
	h.generate(c, KindSubconscious)
}

// Balance 处理时间平衡解读请求。
func (h *Handler) Balance(c *gin.Context) {
	h.generate(c, KindBalance)
}

// generate 是三种内容共用的请求入口。
func (h *Handler) generate(c *gin.Context, kind ContentKind) {
	var profile BirthProfile
	if err := c.ShouldBindJSON(&profile); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body: " + err.Error()})
		return
	}

	result, err := h.service.Generate(c.Request.Context(), kind, profile)
	if err != nil {
		h.renderError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// renderError 把内部错误翻译成对前端的响应。
// 生成服务的状态码和响应体尽可能原样透传。
func (h *Handler) renderError(c *gin.Context, err error) {
	var validation *ValidationError
	if errors.As(err, &validation) {
		c.JSON(http.StatusBadRequest, gin.H{"error": validation.Error()})
		return
	}

	var upstream *llm.UpstreamError
	if errors.As(err, &upstream) {
		c.JSON(upstream.Status, gin.H{
			"error":   "generation service error",
			"status":  upstream.Status,
			"details": upstream.Body,
		})
		return
	}

	if errors.Is(err, llm.ErrEmptyResponse) {
		c.JSON(http.StatusBadGateway, gin.H{"error": "empty response from generation service"})
		return
	}

	c.JSON(http.StatusBadGateway, gin.H{"error": "generation request failed: " + err.Error()})
}
