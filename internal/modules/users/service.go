package users

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const minPasswordLen = 8

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// NormalizePhone strips spacing and dashes and defaults bare local
// numbers to the Malian country code.
func NormalizePhone(p string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(p) {
		if r >= '0' && r <= '9' || r == '+' {
			b.WriteRune(r)
		}
	}
	out := b.String()
	if out == "" {
		return ""
	}
	if strings.HasPrefix(out, "+") {
		return out
	}
	if strings.HasPrefix(out, "00") {
		return "+" + out[2:]
	}
	// local 8-digit Malian numbers
	if len(out) == 8 {
		return "+223" + out
	}
	return "+" + out
}

type RegisterInput struct {
	Phone     string
	Email     string
	Password  string
	FirstName string
	LastName  string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	phone := NormalizePhone(in.Phone)
	if phone == "" {
		return User{}, ErrInvalidCredentials
	}
	if len(in.Password) < minPasswordLen {
		return User{}, ErrWeakPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return User{}, err
	}

	now := time.Now()
	u := User{
		ID:           uuid.NewString(),
		PhoneE164:    phone,
		PasswordHash: string(hash),
		Role:         RoleCustomer,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if e := strings.TrimSpace(strings.ToLower(in.Email)); e != "" {
		u.Email = &e
	}
	if v := strings.TrimSpace(in.FirstName); v != "" {
		u.FirstName = &v
	}
	if v := strings.TrimSpace(in.LastName); v != "" {
		u.LastName = &v
	}

	if err := s.db.WithContext(ctx).Create(&u).Error; err != nil {
		if isDuplicateKey(err) {
			return User{}, ErrPhoneTaken
		}
		return User{}, err
	}
	return u, nil
}

// Login accepts the phone number (any common formatting) or, as a
// fallback, the account email.
func (s *Service) Login(ctx context.Context, identifier, password string) (User, error) {
	identifier = strings.TrimSpace(identifier)
	if identifier == "" || password == "" {
		return User{}, ErrInvalidCredentials
	}

	var u User
	q := s.db.WithContext(ctx)
	if strings.Contains(identifier, "@") {
		q = q.Where("email = ?", strings.ToLower(identifier))
	} else {
		q = q.Where("phone_e164 = ?", NormalizePhone(identifier))
	}
	if err := q.First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrInvalidCredentials
		}
		return User{}, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return User{}, ErrInvalidCredentials
	}
	return u, nil
}

// ChangePassword is done in-session against the current password; there
// is no email round trip because most accounts have no email.
func (s *Service) ChangePassword(ctx context.Context, userID, current, next string) error {
	if len(next) < minPasswordLen {
		return ErrWeakPassword
	}

	var u User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(current)) != nil {
		return ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(next), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(&User{}).
		Where("id = ?", userID).
		Updates(map[string]any{"password_hash": string(hash), "updated_at": time.Now()}).Error
}

type ProfileInput struct {
	FirstName string
	LastName  string
	Email     string
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileInput) error {
	updates := map[string]any{"updated_at": time.Now()}

	if v := strings.TrimSpace(in.FirstName); v != "" {
		updates["first_name"] = v
	}
	if v := strings.TrimSpace(in.LastName); v != "" {
		updates["last_name"] = v
	}
	if v := strings.TrimSpace(strings.ToLower(in.Email)); v != "" {
		updates["email"] = v
	}

	err := s.db.WithContext(ctx).Model(&User{}).Where("id = ?", userID).Updates(updates).Error
	if isDuplicateKey(err) {
		return ErrPhoneTaken
	}
	return err
}

func (s *Service) GetByID(ctx context.Context, userID string) (User, error) {
	var u User
	if err := s.db.WithContext(ctx).First(&u, "id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return u, nil
}

func isDuplicateKey(err error) bool {
	var me *mysql.MySQLError
	return errors.As(err, &me) && me.Number == 1062
}
