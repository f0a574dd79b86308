package dto

// CategoryRequest HTTP层分类写入请求（创建与更新共用）
type CategoryRequest struct {
	Name        string `json:"name" binding:"required,max=50"`
	Description string `json:"description" binding:"max=255"`
}
