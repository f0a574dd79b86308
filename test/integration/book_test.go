package integration

import (
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBookCreateAndGet 管理员上架图书,公开接口可查详情
func TestBookCreateAndGet(t *testing.T) {
	SkipUnlessE2E(t)

	manager := ManagerToken(t)
	created := CreateTestBook(t, manager, "Go语言实战(集成)", 8900)

	// 详情无需登录
	resp := GetJSON(t, fmt.Sprintf("%s/books/%d", BaseURL(), created.ID), "")
	require.Equal(t, 0, resp.Code, "查询图书失败: %s", resp.Message)

	var got BookData
	Unmarshal(t, resp, &got)
	assert.Equal(t, created.ISBN, got.ISBN)
	assert.Equal(t, int64(8900), got.Price)
	assert.Equal(t, "89.00", got.PriceYuan)
}

// TestBookCreate_RequiresManager 普通用户没有上架权限
func TestBookCreate_RequiresManager(t *testing.T) {
	SkipUnlessE2E(t)

	_, userToken := RegisterTestUser(t, "reader")

	resp := PostJSON(t, BaseURL()+"/books", map[string]interface{}{
		"isbn":  GenerateTestISBN(),
		"title": "不该出现的书",
		"price": 100,
	}, userToken)
	assert.NotEqual(t, 0, resp.Code, "USER角色不应能上架图书")
}

// TestBookCreate_DuplicateISBN ISBN全局唯一
func TestBookCreate_DuplicateISBN(t *testing.T) {
	SkipUnlessE2E(t)

	manager := ManagerToken(t)
	created := CreateTestBook(t, manager, "原书", 1000)

	resp := PostJSON(t, BaseURL()+"/books", map[string]interface{}{
		"isbn":  created.ISBN,
		"title": "撞ISBN的书",
		"price": 2000,
	}, manager)
	assert.NotEqual(t, 0, resp.Code, "重复ISBN上架应当失败")
}

// TestBookSearch 组合搜索:标题模糊匹配+价格区间
func TestBookSearch(t *testing.T) {
	SkipUnlessE2E(t)

	manager := ManagerToken(t)
	marker := fmt.Sprintf("检索标记%d", time.Now().UnixNano())
	cheap := CreateTestBook(t, manager, marker+"低价", 500)
	CreateTestBook(t, manager, marker+"高价", 99900)

	// 标题模糊+价格上限:只命中低价那本
	searchURL := fmt.Sprintf("%s/books?title=%s&max_price=1000", BaseURL(), url.QueryEscape(marker))
	resp := GetJSON(t, searchURL, "")
	require.Equal(t, 0, resp.Code, "搜索失败: %s", resp.Message)

	var list BookListData
	Unmarshal(t, resp, &list)
	require.Equal(t, int64(1), list.Total)
	assert.Equal(t, cheap.ID, list.List[0].ID)

	// min>max:参数错误
	badResp := GetJSON(t, BaseURL()+"/books?min_price=2000&max_price=1000", "")
	assert.NotEqual(t, 0, badResp.Code, "min_price>max_price应当报错")
}

// TestCategoryFlow 分类增删改查;未知分类ID上架图书被拒绝
func TestCategoryFlow(t *testing.T) {
	SkipUnlessE2E(t)

	manager := ManagerToken(t)

	createResp := PostJSON(t, BaseURL()+"/categories", map[string]string{
		"name":        fmt.Sprintf("集成分类%d", time.Now().UnixNano()),
		"description": "集成测试用分类",
	}, manager)
	require.Equal(t, 0, createResp.Code, "创建分类失败: %s", createResp.Message)

	var cat CategoryData
	Unmarshal(t, createResp, &cat)

	// 挂到已存在的分类:成功
	book := CreateTestBook(t, manager, "带分类的书", 1500, cat.ID)
	assert.NotZero(t, book.ID)

	// 未知分类ID:整个请求失败
	badResp := PostJSON(t, BaseURL()+"/books", map[string]interface{}{
		"isbn":         GenerateTestISBN(),
		"title":        "分类不存在的书",
		"price":        1500,
		"category_ids": []uint{cat.ID, 99999999},
	}, manager)
	assert.NotEqual(t, 0, badResp.Code, "未知分类ID应当整体拒绝")

	// 按分类搜索能命中
	searchResp := GetJSON(t, fmt.Sprintf("%s/books?category_id=%d", BaseURL(), cat.ID), "")
	require.Equal(t, 0, searchResp.Code)

	var list BookListData
	Unmarshal(t, searchResp, &list)
	assert.GreaterOrEqual(t, list.Total, int64(1))
}
