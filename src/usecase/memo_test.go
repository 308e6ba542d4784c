package usecase_test

import (
	"context"
	"io"
	"testing"

	"memo-registry/src/attachment"
	"memo-registry/src/domain"
	"memo-registry/src/models"
	"memo-registry/src/usecase"
	"memo-registry/src/validator"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockMemoRepository is a mock implementation of domain.MemoRepository
type MockMemoRepository struct {
	mock.Mock
}

func (m *MockMemoRepository) List() []domain.Memo {
	args := m.Called()
	return args.Get(0).([]domain.Memo)
}

func (m *MockMemoRepository) Get(id string) (*domain.Memo, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memo), args.Error(1)
}

func (m *MockMemoRepository) Add(memo domain.Memo) (*domain.Memo, error) {
	args := m.Called(memo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memo), args.Error(1)
}

func (m *MockMemoRepository) Update(memo domain.Memo) (*domain.Memo, error) {
	args := m.Called(memo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Memo), args.Error(1)
}

func (m *MockMemoRepository) Delete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockMemoRepository) Departments() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func (m *MockMemoRepository) AddDepartment(name string) bool {
	args := m.Called(name)
	return args.Bool(0)
}

func (m *MockMemoRepository) Teachers() []string {
	args := m.Called()
	return args.Get(0).([]string)
}

func newTestUsecase(repo domain.MemoRepository) usecase.MemoUsecase {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return usecase.NewMemoUsecase(repo, log, 10)
}

func validRequest() models.CreateMemoRequest {
	return models.CreateMemoRequest{
		MemoNumber: "001/2567",
		Date:       "2024-01-05",
		Teacher:    "Somchai",
		Subject:    "Budget request",
		Department: "A",
	}
}

func TestMemoUsecase_CreateMemo(t *testing.T) {
	tests := []struct {
		name          string
		request       models.CreateMemoRequest
		mockSetup     func(*MockMemoRepository)
		expectedError error
		validation    bool
	}{
		{
			name:    "successful creation",
			request: validRequest(),
			mockSetup: func(m *MockMemoRepository) {
				m.On("Departments").Return([]string{"A", "B"})
				m.On("Add", mock.AnythingOfType("domain.Memo")).Return(&domain.Memo{
					ID:         "id-1",
					MemoNumber: "001/2567",
					Date:       "2024-01-05",
					Teacher:    "Somchai",
					Subject:    "Budget request",
					Department: "A",
				}, nil)
			},
		},
		{
			name: "missing memo number",
			request: models.CreateMemoRequest{
				Date:       "2024-01-05",
				Teacher:    "Somchai",
				Subject:    "Budget request",
				Department: "A",
			},
			mockSetup:  func(m *MockMemoRepository) {},
			validation: true,
		},
		{
			name: "missing teacher",
			request: models.CreateMemoRequest{
				MemoNumber: "001/2567",
				Date:       "2024-01-05",
				Subject:    "Budget request",
				Department: "A",
			},
			mockSetup:  func(m *MockMemoRepository) {},
			validation: true,
		},
		{
			name: "date not a calendar date",
			request: models.CreateMemoRequest{
				MemoNumber: "001/2567",
				Date:       "05/01/2024",
				Teacher:    "Somchai",
				Subject:    "Budget request",
				Department: "A",
			},
			mockSetup:  func(m *MockMemoRepository) {},
			validation: true,
		},
		{
			name: "department outside the current set",
			request: models.CreateMemoRequest{
				MemoNumber: "001/2567",
				Date:       "2024-01-05",
				Teacher:    "Somchai",
				Subject:    "Budget request",
				Department: "Nonexistent",
			},
			mockSetup: func(m *MockMemoRepository) {
				m.On("Departments").Return([]string{"A", "B"})
			},
			expectedError: usecase.ErrUnknownDepartment,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := new(MockMemoRepository)
			tt.mockSetup(repo)
			u := newTestUsecase(repo)

			memo, err := u.CreateMemo(context.Background(), tt.request, nil)

			switch {
			case tt.validation:
				require.Error(t, err)
				var ve validator.ValidationErrors
				assert.ErrorAs(t, err, &ve)
				repo.AssertNotCalled(t, "Add", mock.Anything)
			case tt.expectedError != nil:
				assert.ErrorIs(t, err, tt.expectedError)
				repo.AssertNotCalled(t, "Add", mock.Anything)
			default:
				require.NoError(t, err)
				assert.Equal(t, "id-1", memo.ID)
				repo.AssertExpectations(t)
			}
		})
	}
}

func TestMemoUsecase_UpdateMemo_UnknownID(t *testing.T) {
	repo := new(MockMemoRepository)
	repo.On("Departments").Return([]string{"A"})
	repo.On("Get", "missing").Return(nil, domain.ErrMemoNotFound)
	u := newTestUsecase(repo)

	req := models.UpdateMemoRequest(validRequest())
	_, err := u.UpdateMemo(context.Background(), "missing", req, nil)
	assert.ErrorIs(t, err, domain.ErrMemoNotFound)
	repo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestMemoUsecase_CreateMemo_CancelledContext(t *testing.T) {
	repo := new(MockMemoRepository)
	repo.On("Departments").Return([]string{"A"})
	u := newTestUsecase(repo)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	file := &attachment.Input{Name: "doc.pdf", Reader: failingReader{}}
	_, err := u.CreateMemo(ctx, validRequest(), file)
	assert.ErrorIs(t, err, context.Canceled)
	repo.AssertNotCalled(t, "Add", mock.Anything)
}

func TestMemoUsecase_CreateMemo_EncodingFailureAborts(t *testing.T) {
	repo := new(MockMemoRepository)
	repo.On("Departments").Return([]string{"A"})
	u := newTestUsecase(repo)

	file := &attachment.Input{Name: "doc.pdf", Reader: failingReader{}}
	_, err := u.CreateMemo(context.Background(), validRequest(), file)
	require.Error(t, err)

	// No partial record on encoding failure.
	repo.AssertNotCalled(t, "Add", mock.Anything)
}

func TestMemoUsecase_ConfirmDelete(t *testing.T) {
	repo := new(MockMemoRepository)
	repo.On("Delete", "memo-1").Return(nil).Once()
	u := newTestUsecase(repo)

	token, err := u.RequestDelete("memo-1")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	// Nothing is deleted before confirmation.
	repo.AssertNotCalled(t, "Delete", mock.Anything)

	require.NoError(t, u.ConfirmDelete(token))
	repo.AssertExpectations(t)

	// Tokens are single-use.
	assert.ErrorIs(t, u.ConfirmDelete(token), usecase.ErrUnknownToken)
	assert.ErrorIs(t, u.ConfirmDelete("made-up"), usecase.ErrUnknownToken)
}

func TestMemoUsecase_PeriodStats_InvalidGranularity(t *testing.T) {
	repo := new(MockMemoRepository)
	u := newTestUsecase(repo)

	_, err := u.PeriodStats(domain.Granularity("week"))
	assert.ErrorIs(t, err, usecase.ErrInvalidGranularity)
}

func TestMemoUsecase_Busy(t *testing.T) {
	repo := new(MockMemoRepository)
	u := newTestUsecase(repo)
	assert.False(t, u.Busy(), "idle between saves")
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, assert.AnError
}
