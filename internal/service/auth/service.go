package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/m04kA/SMC-LaundryService/internal/domain"
	userRepo "github.com/m04kA/SMC-LaundryService/internal/infra/storage/user"
	"github.com/m04kA/SMC-LaundryService/internal/service/auth/models"
)

// Service сервис регистрации, входа и профиля пользователя
type Service struct {
	userRepo    UserRepository
	tokens      TokenIssuer
	bcryptCost  int
	adminPhones map[string]struct{}
	logger      Logger
}

// NewService создает новый экземпляр сервиса авторизации
// adminPhones - номера телефонов пользователей с правами администратора
func NewService(userRepo UserRepository, tokens TokenIssuer, bcryptCost int, adminPhones []string, logger Logger) *Service {
	if bcryptCost < bcrypt.MinCost {
		bcryptCost = bcrypt.DefaultCost
	}

	admins := make(map[string]struct{}, len(adminPhones))
	for _, phone := range adminPhones {
		if phone = normalizePhone(phone); phone != "" {
			admins[phone] = struct{}{}
		}
	}

	return &Service{
		userRepo:    userRepo,
		tokens:      tokens,
		bcryptCost:  bcryptCost,
		adminPhones: admins,
		logger:      logger,
	}
}

// Register регистрирует пользователя и выпускает токен
// Уникальность номера проверяет хранилище при вставке
func (s *Service) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	phone := normalizePhone(req.Number)

	s.logger.Info("Register: registering user number=%s", phone)

	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	if err := validatePassword(req.Password, req.RepeatPassword); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.bcryptCost)
	if err != nil {
		s.logger.Error("Register: failed to hash password: %v", err)
		return nil, fmt.Errorf("%w: hash password: %v", ErrInternal, err)
	}

	user, err := s.userRepo.Create(ctx, &domain.User{Name: name, PhoneNumber: phone, PasswordHash: string(hash)})
	if err != nil {
		if errors.Is(err, userRepo.ErrPhoneTaken) {
			s.logger.Warn("Register: number=%s already registered", phone)
			return nil, ErrPhoneTaken
		}
		s.logger.Error("Register: repository error: %v", err)
		return nil, fmt.Errorf("%w: Register - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("Register: successfully registered user id=%d", user.ID)
	return s.issue(user)
}

// Login проверяет пароль и выпускает токен
func (s *Service) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	phone := normalizePhone(req.Number)

	if err := validatePhone(phone); err != nil {
		return nil, err
	}
	if req.Password == "" {
		return nil, fmt.Errorf("%w: password is required", ErrInvalidInput)
	}

	user, err := s.userRepo.GetByPhone(ctx, phone)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("Login: number=%s not registered", phone)
			return nil, ErrInvalidCredentials
		}
		s.logger.Error("Login: repository error: %v", err)
		return nil, fmt.Errorf("%w: Login - repository error: %w", ErrInternal, err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		s.logger.Warn("Login: wrong password for user id=%d", user.ID)
		return nil, ErrInvalidCredentials
	}

	s.logger.Info("Login: user id=%d logged in", user.ID)
	return s.issue(user)
}

// Authenticate загружает пользователя из токена и определяет его права
func (s *Service) Authenticate(ctx context.Context, userID int64) (domain.Actor, error) {
	user, err := s.get(ctx, "Authenticate", userID)
	if err != nil {
		return domain.Actor{}, err
	}
	return domain.Actor{UserID: user.ID, IsAdmin: s.isAdmin(user)}, nil
}

// Profile возвращает профиль пользователя
func (s *Service) Profile(ctx context.Context, userID int64) (*models.UserResponse, error) {
	user, err := s.get(ctx, "Profile", userID)
	if err != nil {
		return nil, err
	}

	resp := models.FromDomainUser(user, s.isAdmin(user))
	return &resp, nil
}

// UpdateProfile обновляет имя, номер телефона и пароль
func (s *Service) UpdateProfile(ctx context.Context, userID int64, req *models.UpdateProfileRequest) (*models.UserResponse, error) {
	s.logger.Info("UpdateProfile: updating user id=%d", userID)

	user, err := s.get(ctx, "UpdateProfile", userID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if err := validateName(name); err != nil {
			return nil, err
		}
		user.Name = name
	}

	if req.Number != nil {
		phone := normalizePhone(*req.Number)
		if err := validatePhone(phone); err != nil {
			return nil, err
		}
		user.PhoneNumber = phone
	}

	if req.Password != nil && strings.TrimSpace(*req.Password) != "" {
		repeat := ""
		if req.RepeatPassword != nil {
			repeat = *req.RepeatPassword
		}
		if err := validatePassword(*req.Password, repeat); err != nil {
			return nil, err
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), s.bcryptCost)
		if err != nil {
			s.logger.Error("UpdateProfile: failed to hash password: %v", err)
			return nil, fmt.Errorf("%w: hash password: %v", ErrInternal, err)
		}
		user.PasswordHash = string(hash)
	}

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		switch {
		case errors.Is(err, userRepo.ErrPhoneTaken):
			s.logger.Warn("UpdateProfile: number=%s already registered", user.PhoneNumber)
			return nil, ErrPhoneTaken
		case errors.Is(err, userRepo.ErrUserNotFound):
			return nil, ErrUserNotFound
		}
		s.logger.Error("UpdateProfile: repository error for user id=%d: %v", userID, err)
		return nil, fmt.Errorf("%w: UpdateProfile - repository error: %w", ErrInternal, err)
	}

	resp := models.FromDomainUser(updated, s.isAdmin(updated))
	return &resp, nil
}

// DeleteProfile удаляет учетную запись пользователя
// Пользователь с заказами не удаляется (ErrHasOrders): журнал заказов хранит ссылку на владельца.
func (s *Service) DeleteProfile(ctx context.Context, userID int64) error {
	s.logger.Info("DeleteProfile: deleting user id=%d", userID)

	if err := s.userRepo.Delete(ctx, userID); err != nil {
		switch {
		case errors.Is(err, userRepo.ErrUserNotFound):
			s.logger.Warn("DeleteProfile: user id=%d not found", userID)
			return ErrUserNotFound
		case errors.Is(err, userRepo.ErrUserHasOrders):
			s.logger.Warn("DeleteProfile: user id=%d has orders", userID)
			return ErrHasOrders
		}
		s.logger.Error("DeleteProfile: repository error for user id=%d: %v", userID, err)
		return fmt.Errorf("%w: DeleteProfile - repository error: %w", ErrInternal, err)
	}

	s.logger.Info("DeleteProfile: user id=%d deleted", userID)
	return nil
}

// Вспомогательные методы

func (s *Service) issue(user *domain.User) (*models.AuthResponse, error) {
	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		s.logger.Error("issue: failed to sign token for user id=%d: %v", user.ID, err)
		return nil, fmt.Errorf("%w: issue token: %v", ErrInternal, err)
	}

	return &models.AuthResponse{Token: token, User: models.FromDomainUser(user, s.isAdmin(user))}, nil
}

func (s *Service) get(ctx context.Context, op string, userID int64) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, userRepo.ErrUserNotFound) {
			s.logger.Warn("%s: user id=%d not found", op, userID)
			return nil, ErrUserNotFound
		}
		s.logger.Error("%s: repository error for user id=%d: %v", op, userID, err)
		return nil, fmt.Errorf("%w: %s - repository error: %w", ErrInternal, op, err)
	}
	return user, nil
}

func (s *Service) isAdmin(user *domain.User) bool {
	_, ok := s.adminPhones[user.PhoneNumber]
	return ok
}
