package integration

import (
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestUserRegisterAndLogin 注册登录完整链路
func TestUserRegisterAndLogin(t *testing.T) {
	SkipUnlessE2E(t)

	email := GenerateTestEmail("user")
	registerResp := PostJSON(t, BaseURL()+"/users/register", map[string]string{
		"email":            email,
		"password":         "Test1234",
		"password_confirm": "Test1234",
		"nickname":         "测试用户",
	}, "")
	require.Equal(t, 0, registerResp.Code, "注册失败: %s", registerResp.Message)

	token := Login(t, email, "Test1234")
	assert.NotEmpty(t, token)
}

// TestUserRegister_DuplicateEmail 重复邮箱(含大小写变体)被拒绝
func TestUserRegister_DuplicateEmail(t *testing.T) {
	SkipUnlessE2E(t)

	email, _ := RegisterTestUser(t, "dup")

	// 邮箱在写入时已小写归一化,大写变体同样算重复
	for _, variant := range []string{email, strings.ToUpper(email)} {
		resp := PostJSON(t, BaseURL()+"/users/register", map[string]string{
			"email":            variant,
			"password":         "Test1234",
			"password_confirm": "Test1234",
			"nickname":         "测试用户",
		}, "")
		assert.NotEqual(t, 0, resp.Code, "重复邮箱注册应该失败: %s", variant)
	}
}

// TestUserLogin_WrongPassword 密码错误与邮箱不存在同一提示(防账号枚举)
func TestUserLogin_WrongPassword(t *testing.T) {
	SkipUnlessE2E(t)

	email, _ := RegisterTestUser(t, "wrongpw")

	wrongPw := PostJSON(t, BaseURL()+"/users/login", map[string]string{
		"email":    email,
		"password": "Wrong1234",
	}, "")
	unknownEmail := PostJSON(t, BaseURL()+"/users/login", map[string]string{
		"email":    GenerateTestEmail("nobody"),
		"password": "Test1234",
	}, "")

	assert.NotEqual(t, 0, wrongPw.Code)
	assert.Equal(t, wrongPw.Code, unknownEmail.Code, "两种失败对外应当不可区分")
	assert.Equal(t, wrongPw.Message, unknownEmail.Message)
}

// TestUserLogout Token登出后进入黑名单不可再用
func TestUserLogout(t *testing.T) {
	SkipUnlessE2E(t)

	_, token := RegisterTestUser(t, "logout")

	// 登出前可以访问受保护接口
	before := GetJSON(t, BaseURL()+"/cart", token)
	require.Equal(t, 0, before.Code, "登出前访问失败: %s", before.Message)

	logoutResp := DoJSON(t, http.MethodPost, BaseURL()+"/users/logout", nil, token)
	require.Equal(t, 0, logoutResp.Code, "登出失败: %s", logoutResp.Message)

	after := GetJSON(t, BaseURL()+"/cart", token)
	assert.NotEqual(t, 0, after.Code, "登出后的Token不应再可用")
}

// TestUserRefreshToken 用Refresh Token换取新的Access Token
func TestUserRefreshToken(t *testing.T) {
	SkipUnlessE2E(t)

	email, _ := RegisterTestUser(t, "refresh")

	loginResp := PostJSON(t, BaseURL()+"/users/login", map[string]string{
		"email":    email,
		"password": "Test1234",
	}, "")
	require.Equal(t, 0, loginResp.Code)

	var loginData LoginData
	Unmarshal(t, loginResp, &loginData)

	refreshResp := PostJSON(t, BaseURL()+"/users/refresh", map[string]string{
		"refresh_token": loginData.RefreshToken,
	}, "")
	require.Equal(t, 0, refreshResp.Code, "刷新Token失败: %s", refreshResp.Message)

	var refreshed struct {
		AccessToken string `json:"access_token"`
	}
	Unmarshal(t, refreshResp, &refreshed)

	resp := GetJSON(t, BaseURL()+"/cart", refreshed.AccessToken)
	assert.Equal(t, 0, resp.Code, "新Access Token应当可用")
}
