package service_test

import (
	"context"
	"testing"

	"github.com/Consa-Interactive/navandex-sub001/internal/core/domain"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/port/mock"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/service"
	"github.com/Consa-Interactive/navandex-sub001/internal/core/utils"
	"github.com/golang/mock/gomock"
	"github.com/govalues/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type prepareMocks func(repo *mock.MockRepository, notifier *mock.MockNotifier)

func newTestService(t *testing.T, repo *mock.MockRepository, notifier *mock.MockNotifier) *service.Service {
	t.Helper()
	logger := zap.NewNop()
	ctrl := gomock.NewController(t)
	ts := mock.NewMockTokenService(ctrl)
	s, err := service.NewService(repo, ts, notifier, nil, nil, logger)
	require.NoError(t, err)
	return s
}

func statusPtr(s domain.OrderStatus) *domain.OrderStatus { return &s }
func strPtr(s string) *string                            { return &s }
func boolPtr(b bool) *bool                               { return &b }
func int32Ptr(i int32) *int32                            { return &i }

func TestService_UserRegister(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger := zap.NewNop()

	type userRegisterTest struct {
		name      string
		user      domain.User
		mock      prepareMocks
		expError  error
		expResult *domain.User
	}

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{
		Phone:    "+9647501234567",
		Name:     "Test",
		Password: hashedPass,
		Role:     domain.RoleCustomer,
		ID:       1,
	}

	tests := []userRegisterTest{
		{
			name: "Register good",
			user: domain.User{Phone: user.Phone, Name: user.Name, Password: "test"},
			mock: func(repo *mock.MockRepository, notifier *mock.MockNotifier) {
				repo.EXPECT().GetUserByPhone(gomock.Any(), user.Phone).Return(nil, domain.ErrDataNotFound)
				repo.EXPECT().CreateUser(gomock.Any(), gomock.Any()).Return(&user, nil)
			},
			expError:  nil,
			expResult: &user,
		},
		{
			name: "Register already exists",
			user: domain.User{Phone: user.Phone, Name: user.Name, Password: "test"},
			mock: func(repo *mock.MockRepository, notifier *mock.MockNotifier) {
				repo.EXPECT().GetUserByPhone(gomock.Any(), user.Phone).Return(&user, nil)
			},
			expError:  domain.ErrConflictingData,
			expResult: nil,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			notifier := mock.NewMockNotifier(mockCtrl)
			test.mock(repo, notifier)

			s, err := service.NewService(repo, ts, notifier, nil, nil, logger)
			assert.NoError(t, err)

			result, err := s.RegisterUser(context.Background(), &test.user)

			assert.Equal(t, test.expResult, result)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_UserLogin(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	logger := zap.NewNop()

	hashedPass, _ := utils.HashPassword("test")
	user := domain.User{
		Phone:    "+9647501234567",
		Password: hashedPass,
		Role:     domain.RoleCustomer,
		ID:       1,
	}

	type userLoginTest struct {
		name     string
		phone    string
		password string
		mock     prepareMocks
		expError error
	}

	tests := []userLoginTest{
		{
			name:     "Login good",
			phone:    user.Phone,
			password: "test",
			mock: func(repo *mock.MockRepository, notifier *mock.MockNotifier) {
				repo.EXPECT().GetUserByPhone(gomock.Any(), user.Phone).Return(&user, nil)
			},
			expError: nil,
		},
		{
			name:     "Password bad",
			phone:    user.Phone,
			password: "hacker",
			mock: func(repo *mock.MockRepository, notifier *mock.MockNotifier) {
				repo.EXPECT().GetUserByPhone(gomock.Any(), user.Phone).Return(&user, nil)
			},
			expError: domain.ErrInvalidCredentials,
		},
		{
			name:     "Unknown phone",
			phone:    "+9640000000000",
			password: "test",
			mock: func(repo *mock.MockRepository, notifier *mock.MockNotifier) {
				repo.EXPECT().GetUserByPhone(gomock.Any(), "+9640000000000").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrInvalidCredentials,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			ts := mock.NewMockTokenService(mockCtrl)
			notifier := mock.NewMockNotifier(mockCtrl)
			test.mock(repo, notifier)

			if test.expError == nil {
				ts.EXPECT().CreateToken(&user).Return("token", nil)
			}

			s, err := service.NewService(repo, ts, notifier, nil, nil, logger)
			assert.NoError(t, err)

			token, err := s.LoginUser(context.Background(), test.phone, test.password)

			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				assert.NotEmpty(t, token)
			}
		})
	}
}

func TestService_CreateOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	t.Run("Customer submits for self", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		notifier := mock.NewMockNotifier(mockCtrl)
		s := newTestService(t, repo, notifier)

		repo.EXPECT().CreateOrderWithHistory(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, order *domain.Order, entry *domain.StatusHistory) (*domain.Order, error) {
				assert.Equal(t, uint64(7), order.UserID)
				assert.Equal(t, domain.StatusPending, order.Status)
				assert.Equal(t, int32(1), order.Quantity)
				assert.Equal(t, domain.StatusPending, entry.Status)
				assert.Equal(t, "order created", entry.Notes)
				return order, nil
			})

		actor := domain.Actor{UserID: 7, Role: domain.RoleCustomer}
		// A customer cannot plant an order on another account.
		order := &domain.Order{UserID: 99, Title: "Sneakers"}

		result, err := s.CreateOrder(context.Background(), actor, order)
		require.NoError(t, err)
		assert.Equal(t, uint64(7), result.UserID)
	})

	t.Run("Staff submits on behalf of customer", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		notifier := mock.NewMockNotifier(mockCtrl)
		s := newTestService(t, repo, notifier)

		repo.EXPECT().CreateOrderWithHistory(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, order *domain.Order, entry *domain.StatusHistory) (*domain.Order, error) {
				assert.Equal(t, uint64(99), order.UserID)
				assert.Equal(t, uint64(2), entry.UserID)
				return order, nil
			})

		actor := domain.Actor{UserID: 2, Role: domain.RoleWorker}
		order := &domain.Order{UserID: 99, ProductLink: "https://example.com/p/1"}

		_, err := s.CreateOrder(context.Background(), actor, order)
		require.NoError(t, err)
	})

	t.Run("Empty order rejected", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		notifier := mock.NewMockNotifier(mockCtrl)
		s := newTestService(t, repo, notifier)

		actor := domain.Actor{UserID: 7, Role: domain.RoleCustomer}
		_, err := s.CreateOrder(context.Background(), actor, &domain.Order{})
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	})
}

func TestService_UpdateOrder(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	owner := domain.Actor{UserID: 7, Role: domain.RoleCustomer}
	stranger := domain.Actor{UserID: 8, Role: domain.RoleCustomer}

	stored := func() *domain.Order {
		return &domain.Order{
			ID:       42,
			UserID:   7,
			Title:    "Sneakers",
			Quantity: 2,
			Status:   domain.StatusConfirmed,
		}
	}

	type updateTest struct {
		name           string
		actor          domain.Actor
		patch          *domain.OrderPatch
		mock           func(repo *mock.MockRepository)
		expEntryStatus domain.OrderStatus
		expNotify      bool
		expError       error
	}

	tests := []updateTest{
		{
			name:  "Purchased requires order number",
			actor: admin,
			patch: &domain.OrderPatch{Status: statusPtr(domain.StatusPurchased)},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(42)).Return(stored(), nil)
			},
			expError: domain.ErrOrderNumberRequired,
		},
		{
			name:  "Purchased with order number in same patch",
			actor: admin,
			patch: &domain.OrderPatch{
				Status:      statusPtr(domain.StatusPurchased),
				OrderNumber: strPtr("TR00042"),
			},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(42)).Return(stored(), nil)
			},
			expEntryStatus: domain.StatusPurchased,
			expNotify:      false,
		},
		{
			name:  "Customer cannot set staff-only status on own order",
			actor: owner,
			patch: &domain.OrderPatch{Status: statusPtr(domain.StatusReceivedInTurkey)},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(42)).Return(stored(), nil)
			},
			expError: domain.ErrForbidden,
		},
		{
			name:  "Customer cannot touch another customer's order",
			actor: stranger,
			patch: &domain.OrderPatch{Notes: strPtr("mine now")},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(42)).Return(stored(), nil)
			},
			expError: domain.ErrForbidden,
		},
		{
			name:  "Owner cancels own order",
			actor: owner,
			patch: &domain.OrderPatch{Status: statusPtr(domain.StatusCancelled)},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(42)).Return(stored(), nil)
			},
			expEntryStatus: domain.StatusCancelled,
			expNotify:      true,
		},
		{
			name:  "Notes-only patch logs under PENDING",
			actor: admin,
			patch: &domain.OrderPatch{Notes: strPtr("call customer")},
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().ReadOrder(gomock.Any(), uint64(42)).Return(stored(), nil)
			},
			expEntryStatus: domain.StatusPending,
			expNotify:      false,
		},
		{
			name:     "Unknown status rejected",
			actor:    admin,
			patch:    &domain.OrderPatch{Status: statusPtr(domain.OrderStatus("TELEPORTED"))},
			mock:     func(repo *mock.MockRepository) {},
			expError: domain.ErrInvalidStatus,
		},
		{
			name:     "Non-positive quantity rejected",
			actor:    admin,
			patch:    &domain.OrderPatch{Quantity: int32Ptr(0)},
			mock:     func(repo *mock.MockRepository) {},
			expError: domain.ErrInvalidQuantity,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			notifier := mock.NewMockNotifier(mockCtrl)
			s := newTestService(t, repo, notifier)
			test.mock(repo)

			if test.expError == nil {
				repo.EXPECT().UpdateOrderWithHistory(gomock.Any(), gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, order *domain.Order, entry *domain.StatusHistory) (*domain.Order, error) {
						assert.Equal(t, uint64(42), entry.OrderID)
						assert.Equal(t, test.actor.UserID, entry.UserID)
						assert.Equal(t, test.expEntryStatus, entry.Status)
						return order, nil
					})
				repo.EXPECT().ReadOrderWithOwner(gomock.Any(), uint64(42)).Return(stored(), nil)
			}
			if test.expNotify {
				notifier.EXPECT().ScheduleStatusNotification(uint64(42))
			}

			_, err := s.UpdateOrder(context.Background(), 42, test.actor, test.patch)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestService_UpdateOrderPartial(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	notifier := mock.NewMockNotifier(mockCtrl)
	s := newTestService(t, repo, notifier)

	price, _ := decimal.New(12050, 2)
	stored := &domain.Order{
		ID:       42,
		UserID:   7,
		Title:    "Sneakers",
		Size:     "43",
		Color:    "black",
		Quantity: 2,
		Price:    price,
		Status:   domain.StatusConfirmed,
	}

	repo.EXPECT().ReadOrder(gomock.Any(), uint64(42)).Return(stored, nil)
	repo.EXPECT().UpdateOrderWithHistory(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, order *domain.Order, entry *domain.StatusHistory) (*domain.Order, error) {
			// Only the patched fields move.
			assert.Equal(t, domain.StatusShipped, order.Status)
			assert.True(t, order.Prepaid)
			assert.Equal(t, "Sneakers", order.Title)
			assert.Equal(t, "43", order.Size)
			assert.Equal(t, "black", order.Color)
			assert.Equal(t, int32(2), order.Quantity)
			assert.Equal(t, price, order.Price)
			assert.Contains(t, entry.Notes, "status set to SHIPPED")
			assert.Contains(t, entry.Notes, "marked prepaid")
			return order, nil
		})
	repo.EXPECT().ReadOrderWithOwner(gomock.Any(), uint64(42)).Return(stored, nil)

	admin := domain.Actor{UserID: 1, Role: domain.RoleAdmin}
	patch := &domain.OrderPatch{
		Status:  statusPtr(domain.StatusShipped),
		Prepaid: boolPtr(true),
	}

	_, err := s.UpdateOrder(context.Background(), 42, admin, patch)
	require.NoError(t, err)
}

func TestService_Convert(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	iqd, _ := decimal.New(1310, 0)
	tryRate, _ := decimal.New(3275, 2)

	type convertTest struct {
		name      string
		amount    string
		from, to  string
		mock      func(repo *mock.MockRepository)
		expResult string
		expError  error
	}

	tests := []convertTest{
		{
			name:   "USD to IQD",
			amount: "10",
			from:   "USD",
			to:     "IQD",
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetRate(gomock.Any(), "IQD").Return(&domain.ExchangeRate{Code: "IQD", Rate: iqd}, nil)
			},
			expResult: "13100",
		},
		{
			name:   "IQD to TRY through the base",
			amount: "1310",
			from:   "IQD",
			to:     "TRY",
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetRate(gomock.Any(), "IQD").Return(&domain.ExchangeRate{Code: "IQD", Rate: iqd}, nil)
				repo.EXPECT().GetRate(gomock.Any(), "TRY").Return(&domain.ExchangeRate{Code: "TRY", Rate: tryRate}, nil)
			},
			expResult: "32.75",
		},
		{
			name:   "Unknown currency",
			amount: "10",
			from:   "USD",
			to:     "XXX",
			mock: func(repo *mock.MockRepository) {
				repo.EXPECT().GetRate(gomock.Any(), "XXX").Return(nil, domain.ErrDataNotFound)
			},
			expError: domain.ErrRateUnknown,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			notifier := mock.NewMockNotifier(mockCtrl)
			s := newTestService(t, repo, notifier)
			test.mock(repo)

			amount, err := decimal.Parse(test.amount)
			require.NoError(t, err)

			result, err := s.Convert(context.Background(), amount, test.from, test.to)
			assert.Equal(t, test.expError, err)
			if test.expError == nil {
				expected, err := decimal.Parse(test.expResult)
				require.NoError(t, err)
				assert.Zero(t, result.Cmp(expected), "got %s, want %s", result, expected)
			}
		})
	}
}

func TestService_ConvertUsesCache(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	repo := mock.NewMockRepository(mockCtrl)
	ts := mock.NewMockTokenService(mockCtrl)
	notifier := mock.NewMockNotifier(mockCtrl)
	rateCache := mock.NewMockRateCache(mockCtrl)

	s, err := service.NewService(repo, ts, notifier, rateCache, nil, zap.NewNop())
	require.NoError(t, err)

	iqd, _ := decimal.New(1310, 0)
	rateCache.EXPECT().GetRate(gomock.Any(), "IQD").Return(iqd, true, nil)

	amount, _ := decimal.New(10, 0)
	result, err := s.Convert(context.Background(), amount, "USD", "IQD")
	require.NoError(t, err)

	expected, _ := decimal.New(13100, 0)
	assert.Zero(t, result.Cmp(expected))
}

func TestService_UpsertRate(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	rate, _ := decimal.New(1310, 0)

	t.Run("Base currency rejected", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		notifier := mock.NewMockNotifier(mockCtrl)
		s := newTestService(t, repo, notifier)

		_, err := s.UpsertRate(context.Background(), "usd", rate)
		assert.ErrorIs(t, err, domain.ErrBadRequest)
	})

	t.Run("Non-positive rate rejected", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		notifier := mock.NewMockNotifier(mockCtrl)
		s := newTestService(t, repo, notifier)

		_, err := s.UpsertRate(context.Background(), "IQD", decimal.Zero)
		assert.ErrorIs(t, err, domain.ErrInvalidAmount)
	})

	t.Run("Code normalized before save", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		notifier := mock.NewMockNotifier(mockCtrl)
		s := newTestService(t, repo, notifier)

		repo.EXPECT().UpsertRate(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r *domain.ExchangeRate) (*domain.ExchangeRate, error) {
				assert.Equal(t, "IQD", r.Code)
				return r, nil
			})

		saved, err := s.UpsertRate(context.Background(), " iqd ", rate)
		require.NoError(t, err)
		assert.Equal(t, "IQD", saved.Code)
	})
}

func TestService_CreateInvoice(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	price, _ := decimal.New(100, 0)
	shipping, _ := decimal.New(15, 0)
	local, _ := decimal.New(5, 0)

	orderFor := func(id, userID uint64) *domain.Order {
		return &domain.Order{
			ID:                 id,
			UserID:             userID,
			Price:              price,
			ShippingPrice:      shipping,
			LocalShippingPrice: local,
		}
	}

	t.Run("Totals all charge components", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		notifier := mock.NewMockNotifier(mockCtrl)
		s := newTestService(t, repo, notifier)

		repo.EXPECT().ReadOrder(gomock.Any(), uint64(1)).Return(orderFor(1, 7), nil)
		repo.EXPECT().ReadOrder(gomock.Any(), uint64(2)).Return(orderFor(2, 7), nil)
		repo.EXPECT().CreateInvoice(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, inv *domain.Invoice) (*domain.Invoice, error) {
				expected, _ := decimal.New(240, 0)
				assert.Zero(t, inv.Total.Cmp(expected))
				assert.Equal(t, uint64(7), inv.UserID)
				assert.NotEmpty(t, inv.Number)
				return inv, nil
			})

		_, err := s.CreateInvoice(context.Background(), 7, []uint64{1, 2})
		require.NoError(t, err)
	})

	t.Run("Foreign order rejected", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		notifier := mock.NewMockNotifier(mockCtrl)
		s := newTestService(t, repo, notifier)

		repo.EXPECT().ReadOrder(gomock.Any(), uint64(1)).Return(orderFor(1, 8), nil)

		_, err := s.CreateInvoice(context.Background(), 7, []uint64{1})
		assert.ErrorIs(t, err, domain.ErrOrderNotOwned)
	})

	t.Run("Empty invoice rejected", func(t *testing.T) {
		repo := mock.NewMockRepository(mockCtrl)
		notifier := mock.NewMockNotifier(mockCtrl)
		s := newTestService(t, repo, notifier)

		_, err := s.CreateInvoice(context.Background(), 7, nil)
		assert.ErrorIs(t, err, domain.ErrEmptyInvoice)
	})
}

func TestService_GetOrderOwnership(t *testing.T) {
	mockCtrl := gomock.NewController(t)
	defer mockCtrl.Finish()

	order := &domain.Order{ID: 42, UserID: 7, Status: domain.StatusPending}

	type getTest struct {
		name     string
		actor    domain.Actor
		expError error
	}

	tests := []getTest{
		{name: "Owner reads own order", actor: domain.Actor{UserID: 7, Role: domain.RoleCustomer}},
		{name: "Staff reads any order", actor: domain.Actor{UserID: 1, Role: domain.RoleWorker}},
		{
			name:     "Stranger denied",
			actor:    domain.Actor{UserID: 8, Role: domain.RoleCustomer},
			expError: domain.ErrForbidden,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			repo := mock.NewMockRepository(mockCtrl)
			notifier := mock.NewMockNotifier(mockCtrl)
			s := newTestService(t, repo, notifier)

			repo.EXPECT().ReadOrderWithOwner(gomock.Any(), uint64(42)).Return(order, nil)

			_, err := s.GetOrder(context.Background(), test.actor, 42)
			assert.Equal(t, test.expError, err)
		})
	}
}
