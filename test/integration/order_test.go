package integration

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestCheckoutFlow 购物下单完整链路:
// 加购→覆盖数量→下单(价格快照、整车清空)→订单可查
func TestCheckoutFlow(t *testing.T) {
	SkipUnlessE2E(t)

	manager := ManagerToken(t)
	book := CreateTestBook(t, manager, "结算链路用书", 1000) // 10.00元
	_, token := RegisterTestUser(t, "buyer")

	// 1. 先加1本
	addResp := PostJSON(t, BaseURL()+"/cart/items", map[string]interface{}{
		"book_id":  book.ID,
		"quantity": 1,
	}, token)
	require.Equal(t, 0, addResp.Code, "加购失败: %s", addResp.Message)

	// 2. 同一本书再次加入:数量覆盖为3,而非累加成4
	addResp = PostJSON(t, BaseURL()+"/cart/items", map[string]interface{}{
		"book_id":  book.ID,
		"quantity": 3,
	}, token)
	require.Equal(t, 0, addResp.Code, "再次加购失败: %s", addResp.Message)

	cartResp := GetJSON(t, BaseURL()+"/cart", token)
	require.Equal(t, 0, cartResp.Code)
	var cartData CartData
	Unmarshal(t, cartResp, &cartData)
	require.Len(t, cartData.Items, 1, "同一本书只应有一个条目")
	assert.Equal(t, 3, cartData.Items[0].Quantity)

	// 3. 下单
	orderResp := PostJSON(t, BaseURL()+"/orders", map[string]string{
		"shipping_address": "Main St",
	}, token)
	require.Equal(t, 0, orderResp.Code, "下单失败: %s", orderResp.Message)

	var orderData OrderData
	Unmarshal(t, orderResp, &orderData)
	assert.Equal(t, "PENDING", orderData.Status)
	assert.Equal(t, int64(3000), orderData.Total) // 10.00元 × 3
	assert.Equal(t, "30.00", orderData.TotalYuan)
	require.Len(t, orderData.Items, 1)
	assert.Equal(t, book.ID, orderData.Items[0].BookID)
	assert.Equal(t, 3, orderData.Items[0].Quantity)
	assert.Equal(t, int64(1000), orderData.Items[0].Price)

	// 4. 购物车已清空
	cartResp = GetJSON(t, BaseURL()+"/cart", token)
	require.Equal(t, 0, cartResp.Code)
	Unmarshal(t, cartResp, &cartData)
	assert.Empty(t, cartData.Items, "下单后购物车应当已清空")

	// 5. 订单详情与明细可查
	detailResp := GetJSON(t, fmt.Sprintf("%s/orders/%d", BaseURL(), orderData.ID), token)
	require.Equal(t, 0, detailResp.Code, "查询订单失败: %s", detailResp.Message)

	itemsResp := GetJSON(t, fmt.Sprintf("%s/orders/%d/items", BaseURL(), orderData.ID), token)
	require.Equal(t, 0, itemsResp.Code, "查询订单明细失败: %s", itemsResp.Message)
}

// TestPlaceOrder_EmptyCart 空购物车不能下单
func TestPlaceOrder_EmptyCart(t *testing.T) {
	SkipUnlessE2E(t)

	_, token := RegisterTestUser(t, "emptycart")

	resp := PostJSON(t, BaseURL()+"/orders", map[string]string{
		"shipping_address": "Main St",
	}, token)
	assert.NotEqual(t, 0, resp.Code, "空购物车下单应当失败")
}

// TestOrderSnapshot_SurvivesPriceChange 下单后改价不影响历史订单
func TestOrderSnapshot_SurvivesPriceChange(t *testing.T) {
	SkipUnlessE2E(t)

	manager := ManagerToken(t)
	book := CreateTestBook(t, manager, "改价快照用书", 1000)
	_, token := RegisterTestUser(t, "snapshot")

	addResp := PostJSON(t, BaseURL()+"/cart/items", map[string]interface{}{
		"book_id":  book.ID,
		"quantity": 1,
	}, token)
	require.Equal(t, 0, addResp.Code)

	orderResp := PostJSON(t, BaseURL()+"/orders", map[string]string{
		"shipping_address": "Main St",
	}, token)
	require.Equal(t, 0, orderResp.Code)
	var orderData OrderData
	Unmarshal(t, orderResp, &orderData)

	// 管理员改价
	updateResp := PutJSON(t, fmt.Sprintf("%s/books/%d", BaseURL(), book.ID), map[string]interface{}{
		"isbn":  book.ISBN,
		"title": "改价快照用书",
		"price": 99900,
	}, manager)
	require.Equal(t, 0, updateResp.Code, "改价失败: %s", updateResp.Message)

	// 历史订单金额不变
	detailResp := GetJSON(t, fmt.Sprintf("%s/orders/%d", BaseURL(), orderData.ID), token)
	require.Equal(t, 0, detailResp.Code)
	var persisted OrderData
	Unmarshal(t, detailResp, &persisted)
	assert.Equal(t, int64(1000), persisted.Total)
	assert.Equal(t, int64(1000), persisted.Items[0].Price)
}

// TestOrderStatusChain 管理员沿履约链推进状态;跳级被拒绝
func TestOrderStatusChain(t *testing.T) {
	SkipUnlessE2E(t)

	manager := ManagerToken(t)
	book := CreateTestBook(t, manager, "状态链用书", 1000)
	_, token := RegisterTestUser(t, "statuschain")

	addResp := PostJSON(t, BaseURL()+"/cart/items", map[string]interface{}{
		"book_id":  book.ID,
		"quantity": 1,
	}, token)
	require.Equal(t, 0, addResp.Code)

	orderResp := PostJSON(t, BaseURL()+"/orders", map[string]string{
		"shipping_address": "Main St",
	}, token)
	require.Equal(t, 0, orderResp.Code)
	var orderData OrderData
	Unmarshal(t, orderResp, &orderData)

	statusURL := fmt.Sprintf("%s/orders/%d/status", BaseURL(), orderData.ID)

	// 跳级:PENDING → SHIPPING被拒绝
	skipResp := PutJSON(t, statusURL, map[string]string{"status": "SHIPPING"}, manager)
	assert.NotEqual(t, 0, skipResp.Code, "跳级推进应当失败")

	// 普通用户无权更新状态
	forbiddenResp := PutJSON(t, statusURL, map[string]string{"status": "PROCESSED"}, token)
	assert.NotEqual(t, 0, forbiddenResp.Code, "USER角色不应能更新订单状态")

	// 管理员逐步推进
	for _, status := range []string{"PROCESSED", "SHIPPING", "DELIVERED"} {
		resp := PutJSON(t, statusURL, map[string]string{"status": status}, manager)
		require.Equal(t, 0, resp.Code, "推进到%s失败: %s", status, resp.Message)
	}

	// 终态后不可再推进
	finalResp := PutJSON(t, statusURL, map[string]string{"status": "DELIVERED"}, manager)
	assert.NotEqual(t, 0, finalResp.Code, "终态后不应再推进")
}

// TestOrderOwnership 他人的订单对外与不存在不可区分
func TestOrderOwnership(t *testing.T) {
	SkipUnlessE2E(t)

	manager := ManagerToken(t)
	book := CreateTestBook(t, manager, "归属校验用书", 1000)
	_, ownerToken := RegisterTestUser(t, "owner")
	_, otherToken := RegisterTestUser(t, "other")

	addResp := PostJSON(t, BaseURL()+"/cart/items", map[string]interface{}{
		"book_id":  book.ID,
		"quantity": 1,
	}, ownerToken)
	require.Equal(t, 0, addResp.Code)

	orderResp := PostJSON(t, BaseURL()+"/orders", map[string]string{
		"shipping_address": "Main St",
	}, ownerToken)
	require.Equal(t, 0, orderResp.Code)
	var orderData OrderData
	Unmarshal(t, orderResp, &orderData)

	detailURL := fmt.Sprintf("%s/orders/%d", BaseURL(), orderData.ID)
	missingURL := fmt.Sprintf("%s/orders/%d", BaseURL(), 99999999)

	otherResp := GetJSON(t, detailURL, otherToken)
	missingResp := GetJSON(t, missingURL, otherToken)
	assert.NotEqual(t, 0, otherResp.Code)
	assert.Equal(t, missingResp.Code, otherResp.Code, "他人订单与不存在的订单应当同一错误码")

	// 未登录直接拒绝
	anonResp := DoJSON(t, http.MethodGet, detailURL, nil, "")
	assert.NotEqual(t, 0, anonResp.Code)
}
