package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/xiebiao/bookshop/pkg/errors"
)

// fakeRepository 内存版用户仓储,用于领域服务单元测试
type fakeRepository struct {
	byEmail map[string]*User
	nextID  uint
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{byEmail: make(map[string]*User), nextID: 1}
}

func (f *fakeRepository) Create(_ context.Context, u *User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return apperrors.ErrEmailDuplicate
	}
	u.ID = f.nextID
	f.nextID++
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeRepository) FindByID(_ context.Context, id uint) (*User, error) {
	for _, u := range f.byEmail {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (f *fakeRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return u, nil
}

func (f *fakeRepository) Update(_ context.Context, u *User) error {
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id uint) error {
	for email, u := range f.byEmail {
		if u.ID == id {
			delete(f.byEmail, email)
			return nil
		}
	}
	return apperrors.ErrUserNotFound
}

// TestRegister_Success 注册成功:邮箱小写归一化,密码加密,默认USER角色
func TestRegister_Success(t *testing.T) {
	svc := NewService(newFakeRepository())

	u, err := svc.Register(context.Background(), "  A@X.Com ", "password123", "password123", "小明")
	require.NoError(t, err)

	assert.Equal(t, "a@x.com", u.Email)
	assert.Equal(t, RoleUser, u.Role)
	assert.NotEqual(t, "password123", u.Password) // 不存明文
	assert.NoError(t, svc.ValidatePassword(u.Password, "password123"))
}

// TestRegister_PasswordMismatch 两次输入的密码不一致
func TestRegister_PasswordMismatch(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Register(context.Background(), "a@x.com", "password123", "password456", "小明")
	require.Error(t, err)
	assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)
}

// TestRegister_WeakPassword 密码强度不足
func TestRegister_WeakPassword(t *testing.T) {
	svc := NewService(newFakeRepository())

	cases := []string{"short1", "allletters", "12345678", "a1"}
	for _, pw := range cases {
		_, err := svc.Register(context.Background(), "a@x.com", pw, pw, "小明")
		assert.ErrorIs(t, err, apperrors.ErrWeakPassword, "password %q", pw)
	}
}

// TestRegister_EmailDuplicate 邮箱重复注册(不区分大小写)
func TestRegister_EmailDuplicate(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Register(context.Background(), "a@x.com", "password123", "password123", "小明")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "A@X.COM", "password123", "password123", "小红")
	assert.ErrorIs(t, err, apperrors.ErrEmailDuplicate)
}

// TestRegister_InvalidEmail 邮箱格式校验
func TestRegister_InvalidEmail(t *testing.T) {
	svc := NewService(newFakeRepository())

	for _, email := range []string{"", "not-an-email", "a@", "@x.com"} {
		_, err := svc.Register(context.Background(), email, "password123", "password123", "小明")
		require.Error(t, err, "email %q", email)
		assert.Equal(t, apperrors.ErrCodeInvalidParams, apperrors.GetAppError(err).Code)
	}
}

// TestLogin_Success 登录成功(邮箱大小写不敏感)
func TestLogin_Success(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Register(context.Background(), "a@x.com", "password123", "password123", "小明")
	require.NoError(t, err)

	u, err := svc.Login(context.Background(), "A@x.COM", "password123")
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", u.Email)
}

// TestLogin_WrongPasswordAndUnknownEmail 密码错误与邮箱不存在返回相同错误
// 避免通过登录接口探测邮箱是否已注册
func TestLogin_WrongPasswordAndUnknownEmail(t *testing.T) {
	svc := NewService(newFakeRepository())

	_, err := svc.Register(context.Background(), "a@x.com", "password123", "password123", "小明")
	require.NoError(t, err)

	_, errWrongPw := svc.Login(context.Background(), "a@x.com", "wrongpass1")
	_, errNoUser := svc.Login(context.Background(), "nobody@x.com", "password123")

	assert.ErrorIs(t, errWrongPw, apperrors.ErrInvalidPassword)
	assert.ErrorIs(t, errNoUser, apperrors.ErrInvalidPassword)
}
