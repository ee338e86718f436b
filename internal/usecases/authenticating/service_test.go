package authenticating

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"golang.org/x/crypto/bcrypt"

	"github.com/quickcampaigns/campaigns-api/infrastructure/repository"
	"github.com/quickcampaigns/campaigns-api/infrastructure/repository/mocks"
	"github.com/quickcampaigns/campaigns-api/internal/config"
	"github.com/quickcampaigns/campaigns-api/internal/domain"
	creditmocks "github.com/quickcampaigns/campaigns-api/internal/usecases/crediting/mocks"
)

func newAuthService(t *testing.T) (Authenticator, *mocks.MockUserRepository, *creditmocks.MockCrediter) {
	ctrl := gomock.NewController(t)

	userRepo := mocks.NewMockUserRepository(ctrl)
	crediter := creditmocks.NewMockCrediter(ctrl)

	cfg := &config.Config{
		Auth:    config.Auth{Secret: "segredo-de-teste"},
		Credits: config.Credits{WelcomeBonus: 1},
	}

	return NewService(userRepo, crediter, cfg), userRepo, crediter
}

func TestRegisterUser(t *testing.T) {
	ctx := context.Background()

	t.Run("Cadastro cria o usuário ativo e credita o bônus de boas-vindas", func(t *testing.T) {
		service, userRepo, crediter := newAuthService(t)

		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "maria@example.com").
			Return(nil, nil)

		userRepo.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
				assert.True(t, user.Active)
				assert.NotEmpty(t, user.PasswordHash)
				assert.NotEqual(t, "senha-forte", user.PasswordHash)
				user.ID = 7
				return user, nil
			})

		crediter.EXPECT().
			GrantBonus(gomock.Any(), 7, 1, "Bônus de boas-vindas").
			Return(nil)

		user, err := service.RegisterUser(ctx, &domain.User{
			Name:     "Maria",
			Lastname: "Silva",
			Email:    " Maria@Example.com ",
		}, "senha-forte")
		assert.NoError(t, err)
		assert.Equal(t, 7, user.ID)
		assert.Equal(t, "maria@example.com", user.Email)
	})

	t.Run("Falha no bônus não desfaz o cadastro", func(t *testing.T) {
		service, userRepo, crediter := newAuthService(t)

		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "maria@example.com").
			Return(nil, nil)

		userRepo.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, user *domain.User) (*domain.User, error) {
				user.ID = 7
				return user, nil
			})

		crediter.EXPECT().
			GrantBonus(gomock.Any(), 7, 1, "Bônus de boas-vindas").
			Return(assert.AnError)

		user, err := service.RegisterUser(ctx, &domain.User{
			Name:     "Maria",
			Lastname: "Silva",
			Email:    "maria@example.com",
		}, "senha-forte")
		assert.NoError(t, err)
		assert.Equal(t, 7, user.ID)
	})

	t.Run("Email já cadastrado", func(t *testing.T) {
		service, userRepo, _ := newAuthService(t)

		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "maria@example.com").
			Return(&domain.User{ID: 7, Email: "maria@example.com"}, nil)

		_, err := service.RegisterUser(ctx, &domain.User{
			Name:     "Maria",
			Lastname: "Silva",
			Email:    "maria@example.com",
		}, "senha-forte")
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Corrida no cadastro cai na violação de unicidade", func(t *testing.T) {
		service, userRepo, _ := newAuthService(t)

		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "maria@example.com").
			Return(nil, nil)

		userRepo.EXPECT().
			CreateUser(gomock.Any(), gomock.Any()).
			Return(nil, repository.ErrUniqueViolation)

		_, err := service.RegisterUser(ctx, &domain.User{
			Name:     "Maria",
			Lastname: "Silva",
			Email:    "maria@example.com",
		}, "senha-forte")
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("Dados obrigatórios ausentes", func(t *testing.T) {
		service, _, _ := newAuthService(t)

		_, err := service.RegisterUser(ctx, &domain.User{Email: "maria@example.com"}, "")
		assert.ErrorIs(t, err, ErrMissingRequiredData)
	})
}

func TestLoginUser(t *testing.T) {
	ctx := context.Background()

	activeUser := func(t *testing.T, password string) *domain.User {
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
		assert.NoError(t, err)

		return &domain.User{
			ID:           7,
			Name:         "Maria",
			Lastname:     "Silva",
			Email:        "maria@example.com",
			PasswordHash: string(hash),
			Active:       true,
		}
	}

	t.Run("Login com sucesso emite um token validável", func(t *testing.T) {
		service, userRepo, _ := newAuthService(t)

		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "maria@example.com").
			Return(activeUser(t, "senha-forte"), nil)

		token, err := service.LoginUser(ctx, "Maria@Example.com", "senha-forte")
		assert.NoError(t, err)
		assert.NotEmpty(t, token)

		claims, err := service.ValidateToken(token)
		assert.NoError(t, err)
		assert.Equal(t, 7, claims.UserID)
		assert.Equal(t, "maria@example.com", claims.UserEmail)
	})

	t.Run("Senha incorreta", func(t *testing.T) {
		service, userRepo, _ := newAuthService(t)

		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "maria@example.com").
			Return(activeUser(t, "senha-forte"), nil)

		_, err := service.LoginUser(ctx, "maria@example.com", "senha-errada")
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("Usuário inexistente", func(t *testing.T) {
		service, userRepo, _ := newAuthService(t)

		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "maria@example.com").
			Return(nil, nil)

		_, err := service.LoginUser(ctx, "maria@example.com", "senha-forte")
		assert.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("Conta desativada", func(t *testing.T) {
		service, userRepo, _ := newAuthService(t)

		user := activeUser(t, "senha-forte")
		user.Active = false

		userRepo.EXPECT().
			GetUserByEmail(gomock.Any(), "maria@example.com").
			Return(user, nil)

		_, err := service.LoginUser(ctx, "maria@example.com", "senha-forte")
		assert.ErrorIs(t, err, ErrUserDisabled)
	})
}

func TestValidateToken(t *testing.T) {
	t.Run("Token forjado é rejeitado", func(t *testing.T) {
		service, _, _ := newAuthService(t)

		_, err := service.ValidateToken("token-forjado")
		assert.Error(t, err)
	})
}
