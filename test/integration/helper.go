package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// 集成测试辅助工具
// 这些测试依赖一个运行中的服务实例(默认http://localhost:8080),
// 通过设置环境变量 BOOKSHOP_E2E=1 启用,否则自动跳过。
// 管理员接口的测试需要预先种好的MANAGER账号:
//
//	BOOKSHOP_E2E_MANAGER_EMAIL    (默认 manager@bookshop.local)
//	BOOKSHOP_E2E_MANAGER_PASSWORD (默认 Manager1234)

const (
	// Timeout HTTP请求超时时间
	Timeout = 10 * time.Second
)

// BaseURL API基础URL
func BaseURL() string {
	if v := os.Getenv("BOOKSHOP_E2E_BASE_URL"); v != "" {
		return v + "/api/v1"
	}
	return "http://localhost:8080/api/v1"
}

// SkipUnlessE2E 未开启端到端测试时跳过
func SkipUnlessE2E(t *testing.T) {
	t.Helper()
	if os.Getenv("BOOKSHOP_E2E") == "" {
		t.Skip("设置 BOOKSHOP_E2E=1 以启用集成测试(需要运行中的服务)")
	}
}

// Response 统一响应结构
type Response struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// LoginData 登录响应数据
type LoginData struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// CategoryData 分类响应数据
type CategoryData struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// BookData 图书响应数据
type BookData struct {
	ID        uint   `json:"id"`
	ISBN      string `json:"isbn"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Price     int64  `json:"price"`
	PriceYuan string `json:"price_yuan"`
}

// BookListData 图书搜索响应数据
type BookListData struct {
	List       []BookData `json:"list"`
	Total      int64      `json:"total"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

// CartData 购物车响应数据
type CartData struct {
	ID     uint           `json:"id"`
	UserID uint           `json:"user_id"`
	Items  []CartItemData `json:"items"`
}

// CartItemData 购物车条目数据
type CartItemData struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
}

// OrderData 订单响应数据
type OrderData struct {
	ID              uint            `json:"id"`
	OrderNo         string          `json:"order_no"`
	ShippingAddress string          `json:"shipping_address"`
	Total           int64           `json:"total"`
	TotalYuan       string          `json:"total_yuan"`
	Status          string          `json:"status"`
	Items           []OrderItemData `json:"items"`
}

// OrderItemData 订单明细数据
type OrderItemData struct {
	ID        uint   `json:"id"`
	BookID    uint   `json:"book_id"`
	BookTitle string `json:"book_title"`
	BookISBN  string `json:"book_isbn"`
	Quantity  int    `json:"quantity"`
	Price     int64  `json:"price"`
	Subtotal  int64  `json:"subtotal"`
}

// DoJSON 发送请求并解析统一响应
func DoJSON(t *testing.T, method, url string, data interface{}, token string) *Response {
	t.Helper()

	var body io.Reader
	if data != nil {
		jsonData, err := json.Marshal(data)
		require.NoError(t, err, "JSON序列化失败")
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequest(method, url, body)
	require.NoError(t, err, "创建HTTP请求失败")

	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	client := &http.Client{Timeout: Timeout}
	resp, err := client.Do(req)
	require.NoError(t, err, "发送HTTP请求失败")
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err, "读取响应体失败")

	var result Response
	err = json.Unmarshal(raw, &result)
	require.NoError(t, err, "解析JSON响应失败: %s", string(raw))

	return &result
}

// PostJSON 发送POST请求
func PostJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return DoJSON(t, http.MethodPost, url, data, token)
}

// GetJSON 发送GET请求
func GetJSON(t *testing.T, url string, token string) *Response {
	return DoJSON(t, http.MethodGet, url, nil, token)
}

// PutJSON 发送PUT请求
func PutJSON(t *testing.T, url string, data interface{}, token string) *Response {
	return DoJSON(t, http.MethodPut, url, data, token)
}

// DeleteJSON 发送DELETE请求
func DeleteJSON(t *testing.T, url string, token string) *Response {
	return DoJSON(t, http.MethodDelete, url, nil, token)
}

// Unmarshal 解析响应中的业务数据
func Unmarshal(t *testing.T, resp *Response, out interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(resp.Data, out), "解析响应数据失败")
}

// GenerateTestEmail 生成唯一的测试邮箱
func GenerateTestEmail(prefix string) string {
	return fmt.Sprintf("%s_%d@test.com", prefix, time.Now().UnixNano())
}

// GenerateTestISBN 生成唯一的测试ISBN
func GenerateTestISBN() string {
	return fmt.Sprintf("978%010d", time.Now().UnixNano()%10000000000)
}

// RegisterTestUser 注册测试用户并返回Token(普通USER角色)
func RegisterTestUser(t *testing.T, nickname string) (email string, token string) {
	t.Helper()

	email = GenerateTestEmail(nickname)
	registerReq := map[string]string{
		"email":            email,
		"password":         "Test1234",
		"password_confirm": "Test1234",
		"nickname":         nickname,
	}

	registerResp := PostJSON(t, BaseURL()+"/users/register", registerReq, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	return email, Login(t, email, "Test1234")
}

// Login 登录并返回Access Token
func Login(t *testing.T, email, password string) string {
	t.Helper()

	loginResp := PostJSON(t, BaseURL()+"/users/login", map[string]string{
		"email":    email,
		"password": password,
	}, "")
	require.Equal(t, 0, loginResp.Code, "登录失败: %s", loginResp.Message)

	var loginData LoginData
	Unmarshal(t, loginResp, &loginData)
	return loginData.AccessToken
}

// ManagerToken 登录预先种好的管理员账号
func ManagerToken(t *testing.T) string {
	t.Helper()

	email := os.Getenv("BOOKSHOP_E2E_MANAGER_EMAIL")
	if email == "" {
		email = "manager@bookshop.local"
	}
	password := os.Getenv("BOOKSHOP_E2E_MANAGER_PASSWORD")
	if password == "" {
		password = "Manager1234"
	}
	return Login(t, email, password)
}

// CreateTestBook 上架测试图书(需要MANAGER Token)
func CreateTestBook(t *testing.T, managerToken, title string, price int64, categoryIDs ...uint) BookData {
	t.Helper()

	bookReq := map[string]interface{}{
		"isbn":         GenerateTestISBN(),
		"title":        title,
		"author":       "测试作者",
		"price":        price,
		"description":  "集成测试用图书",
		"category_ids": categoryIDs,
	}

	bookResp := PostJSON(t, BaseURL()+"/books", bookReq, managerToken)
	require.Equal(t, 0, bookResp.Code, "图书上架失败: %s", bookResp.Message)

	var bookData BookData
	Unmarshal(t, bookResp, &bookData)
	return bookData
}
