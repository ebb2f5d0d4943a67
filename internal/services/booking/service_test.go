package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/skillverse/skillverse/internal/common/clock/mocks"
	uuidMocks "github.com/skillverse/skillverse/internal/common/uuid/mocks"
	"github.com/skillverse/skillverse/internal/models"
	ledgerRepo "github.com/skillverse/skillverse/internal/repositories/ledger"
	ledgerMocks "github.com/skillverse/skillverse/internal/repositories/ledger/mocks"
	sessionRepo "github.com/skillverse/skillverse/internal/repositories/session"
	sessionMocks "github.com/skillverse/skillverse/internal/repositories/session/mocks"
	userRepo "github.com/skillverse/skillverse/internal/repositories/user"
	userMocks "github.com/skillverse/skillverse/internal/repositories/user/mocks"
)

type BookingServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockSessionRepo *sessionMocks.MockRepository
	mockLedgerRepo  *ledgerMocks.MockRepository
	mockUserRepo    *userMocks.MockRepository
	mockClock       *mocks.MockClock
	mockUUID        *uuidMocks.MockUUID
	bookingService  Service
	ctx             context.Context

	// Test data
	testTime      time.Time
	testSessionID string
	testBookingID string
	testHostID    string
	testLearnerID string

	// Reusable test fixtures
	testHost         *models.User
	pendingSession   *models.Session
	confirmedSession *models.Session
	completedSession *models.Session

	// Reusable test inputs
	bookInput    *BookInput
	confirmInput *ConfirmInput
	cancelInput  *CancelInput
}

func (s *BookingServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockLedgerRepo = ledgerMocks.NewMockRepository(s.mockCtrl)
	s.mockUserRepo = userMocks.NewMockRepository(s.mockCtrl)
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.mockUUID = uuidMocks.NewMockUUID(s.mockCtrl)

	s.ctx = context.Background()

	// Initialize test data
	s.testTime = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	s.testSessionID = "test-session-id"
	s.testBookingID = "test-booking-id"
	s.testHostID = "test-host-id"
	s.testLearnerID = "test-learner-id"

	// Set up the clock mock to return our test time
	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	// Initialize reusable test fixtures
	s.testHost = &models.User{
		ID:   s.testHostID,
		Name: "Test Host",
	}

	s.pendingSession = &models.Session{
		ID:              s.testSessionID,
		HostID:          s.testHostID,
		LearnerID:       s.testLearnerID,
		ScheduledTime:   s.testTime.Add(24 * time.Hour),
		DurationMinutes: 60,
		Status:          models.SessionStatusPending,
		CreatedAt:       s.testTime,
		UpdatedAt:       s.testTime,
	}

	s.confirmedSession = &models.Session{
		ID:              s.testSessionID,
		HostID:          s.testHostID,
		LearnerID:       s.testLearnerID,
		ScheduledTime:   s.testTime.Add(24 * time.Hour),
		DurationMinutes: 60,
		Status:          models.SessionStatusConfirmed,
		CreatedAt:       s.testTime,
		UpdatedAt:       s.testTime,
	}

	s.completedSession = &models.Session{
		ID:              s.testSessionID,
		HostID:          s.testHostID,
		LearnerID:       s.testLearnerID,
		ScheduledTime:   s.testTime.Add(24 * time.Hour),
		DurationMinutes: 60,
		Status:          models.SessionStatusCompleted,
		CreatedAt:       s.testTime,
		UpdatedAt:       s.testTime,
		CompletedAt:     s.testTime,
	}

	// Initialize reusable test inputs
	s.bookInput = &BookInput{
		LearnerID:       s.testLearnerID,
		HostID:          s.testHostID,
		ScheduledTime:   s.testTime.Add(24 * time.Hour),
		DurationMinutes: 60,
	}

	s.confirmInput = &ConfirmInput{
		SessionID: s.testSessionID,
		ActorID:   s.testHostID,
	}

	s.cancelInput = &CancelInput{
		SessionID: s.testSessionID,
		ActorID:   s.testLearnerID,
	}

	// Create the service with mocked dependencies
	svc, err := New(&Config{
		SessionRepo:   s.mockSessionRepo,
		LedgerRepo:    s.mockLedgerRepo,
		UserRepo:      s.mockUserRepo,
		Clock:         s.mockClock,
		UUIDGenerator: s.mockUUID,
	})
	s.Require().NoError(err)
	s.bookingService = svc
}

func (s *BookingServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestBookingServiceTestSuite(t *testing.T) {
	suite.Run(t, new(BookingServiceTestSuite))
}

func (s *BookingServiceTestSuite) TestBook() {
	s.mockUserRepo.EXPECT().
		GetUser(s.ctx, &userRepo.GetUserInput{UserID: s.testHostID}).
		Return(s.testHost, nil)

	s.mockLedgerRepo.EXPECT().
		GetBalance(s.ctx, &ledgerRepo.GetBalanceInput{UserID: s.testLearnerID}).
		Return(&ledgerRepo.GetBalanceOutput{Balance: 3}, nil)

	s.mockUUID.EXPECT().NewUUID().Return(s.testSessionID)
	s.mockUUID.EXPECT().NewUUID().Return(s.testBookingID)

	s.mockSessionRepo.EXPECT().
		CreateSession(s.ctx, gomock.Any()).
		DoAndReturn(func(_ context.Context, input *sessionRepo.CreateSessionInput) error {
			s.Equal(s.testSessionID, input.Session.ID)
			s.Equal(models.SessionStatusPending, input.Session.Status)
			s.Equal(s.testTime, input.Session.CreatedAt)
			s.Equal(s.testBookingID, input.Booking.ID)
			s.Equal(s.testSessionID, input.Booking.SessionID)
			s.Equal(models.BookingStatusPendingConfirmation, input.Booking.Status)
			return nil
		})

	output, err := s.bookingService.Book(s.ctx, s.bookInput)
	s.Require().NoError(err)
	s.Equal(s.testSessionID, output.Session.ID)
	s.Equal(models.SessionStatusPending, output.Session.Status)
	s.Equal(s.testBookingID, output.Booking.ID)
}

func (s *BookingServiceTestSuite) TestBookSelfBooking() {
	input := &BookInput{
		LearnerID:       s.testHostID,
		HostID:          s.testHostID,
		ScheduledTime:   s.testTime.Add(24 * time.Hour),
		DurationMinutes: 60,
	}

	_, err := s.bookingService.Book(s.ctx, input)
	s.ErrorIs(err, ErrSelfBooking)
}

func (s *BookingServiceTestSuite) TestBookDurationTooShort() {
	input := &BookInput{
		LearnerID:       s.testLearnerID,
		HostID:          s.testHostID,
		ScheduledTime:   s.testTime.Add(24 * time.Hour),
		DurationMinutes: 15,
	}

	_, err := s.bookingService.Book(s.ctx, input)
	s.ErrorIs(err, ErrInvalidDuration)
}

func (s *BookingServiceTestSuite) TestBookMissingScheduledTime() {
	input := &BookInput{
		LearnerID:       s.testLearnerID,
		HostID:          s.testHostID,
		DurationMinutes: 60,
	}

	_, err := s.bookingService.Book(s.ctx, input)
	s.ErrorIs(err, ErrInvalidScheduledTime)
}

func (s *BookingServiceTestSuite) TestBookHostNotFound() {
	s.mockUserRepo.EXPECT().
		GetUser(s.ctx, &userRepo.GetUserInput{UserID: s.testHostID}).
		Return(nil, userRepo.ErrUserNotFound)

	_, err := s.bookingService.Book(s.ctx, s.bookInput)
	s.ErrorIs(err, ErrHostNotFound)
}

func (s *BookingServiceTestSuite) TestBookInsufficientCredits() {
	s.mockUserRepo.EXPECT().
		GetUser(s.ctx, &userRepo.GetUserInput{UserID: s.testHostID}).
		Return(s.testHost, nil)

	s.mockLedgerRepo.EXPECT().
		GetBalance(s.ctx, &ledgerRepo.GetBalanceInput{UserID: s.testLearnerID}).
		Return(&ledgerRepo.GetBalanceOutput{Balance: 0}, nil)

	_, err := s.bookingService.Book(s.ctx, s.bookInput)
	s.ErrorIs(err, ErrInsufficientCredits)
}

func (s *BookingServiceTestSuite) TestConfirm() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(s.pendingSession, nil)

	s.mockSessionRepo.EXPECT().
		UpdateSessionStatus(s.ctx, &sessionRepo.UpdateSessionStatusInput{
			SessionID:        s.testSessionID,
			ExpectedStatuses: []models.SessionStatus{models.SessionStatusPending},
			NewStatus:        models.SessionStatusConfirmed,
			Timestamp:        s.testTime,
		}).
		Return(s.confirmedSession, nil)

	output, err := s.bookingService.Confirm(s.ctx, s.confirmInput)
	s.Require().NoError(err)
	s.Equal(models.SessionStatusConfirmed, output.Session.Status)
}

func (s *BookingServiceTestSuite) TestConfirmNotHost() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(s.pendingSession, nil)

	_, err := s.bookingService.Confirm(s.ctx, &ConfirmInput{
		SessionID: s.testSessionID,
		ActorID:   s.testLearnerID,
	})
	s.ErrorIs(err, ErrNotHost)
}

func (s *BookingServiceTestSuite) TestConfirmNotParticipant() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(s.pendingSession, nil)

	_, err := s.bookingService.Confirm(s.ctx, &ConfirmInput{
		SessionID: s.testSessionID,
		ActorID:   "some-other-user",
	})
	s.ErrorIs(err, ErrNotParticipant)
}

func (s *BookingServiceTestSuite) TestConfirmAlreadyConfirmed() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(s.confirmedSession, nil)

	_, err := s.bookingService.Confirm(s.ctx, s.confirmInput)
	s.ErrorIs(err, ErrInvalidState)
}

func (s *BookingServiceTestSuite) TestConfirmLosesStatusRace() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(s.pendingSession, nil)

	// By the time the write lands, a concurrent cancel already won
	s.mockSessionRepo.EXPECT().
		UpdateSessionStatus(s.ctx, gomock.Any()).
		Return(nil, sessionRepo.ErrStatusConflict)

	_, err := s.bookingService.Confirm(s.ctx, s.confirmInput)
	s.ErrorIs(err, ErrInvalidState)
}

func (s *BookingServiceTestSuite) TestConfirmSessionNotFound() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.bookingService.Confirm(s.ctx, s.confirmInput)
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *BookingServiceTestSuite) TestCancelByLearner() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(s.confirmedSession, nil)

	cancelled := &models.Session{
		ID:          s.testSessionID,
		HostID:      s.testHostID,
		LearnerID:   s.testLearnerID,
		Status:      models.SessionStatusCancelled,
		CancelledAt: s.testTime,
	}

	s.mockSessionRepo.EXPECT().
		UpdateSessionStatus(s.ctx, &sessionRepo.UpdateSessionStatusInput{
			SessionID: s.testSessionID,
			ExpectedStatuses: []models.SessionStatus{
				models.SessionStatusPending,
				models.SessionStatusConfirmed,
			},
			NewStatus: models.SessionStatusCancelled,
			Timestamp: s.testTime,
		}).
		Return(cancelled, nil)

	output, err := s.bookingService.Cancel(s.ctx, s.cancelInput)
	s.Require().NoError(err)
	s.Equal(models.SessionStatusCancelled, output.Session.Status)
}

func (s *BookingServiceTestSuite) TestCancelCompletedSession() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(s.completedSession, nil)

	_, err := s.bookingService.Cancel(s.ctx, s.cancelInput)
	s.ErrorIs(err, ErrInvalidState)
}

func (s *BookingServiceTestSuite) TestCancelNotParticipant() {
	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(s.pendingSession, nil)

	_, err := s.bookingService.Cancel(s.ctx, &CancelInput{
		SessionID: s.testSessionID,
		ActorID:   "some-other-user",
	})
	s.ErrorIs(err, ErrNotParticipant)
}

func (s *BookingServiceTestSuite) TestGetSession() {
	booking := &models.Booking{
		ID:        s.testBookingID,
		SessionID: s.testSessionID,
		LearnerID: s.testLearnerID,
		Status:    models.BookingStatusConfirmed,
	}

	s.mockSessionRepo.EXPECT().
		GetSession(s.ctx, &sessionRepo.GetSessionInput{SessionID: s.testSessionID}).
		Return(s.confirmedSession, nil)

	s.mockSessionRepo.EXPECT().
		GetBooking(s.ctx, &sessionRepo.GetBookingInput{SessionID: s.testSessionID}).
		Return(booking, nil)

	output, err := s.bookingService.GetSession(s.ctx, &GetSessionInput{
		SessionID: s.testSessionID,
		ActorID:   s.testLearnerID,
	})
	s.Require().NoError(err)
	s.Equal(s.testSessionID, output.Session.ID)
	s.Equal(s.testBookingID, output.Booking.ID)
}

func (s *BookingServiceTestSuite) TestListSessions() {
	s.mockSessionRepo.EXPECT().
		GetSessionsForUser(s.ctx, &sessionRepo.GetSessionsForUserInput{UserID: s.testLearnerID}).
		Return(&sessionRepo.GetSessionsForUserOutput{
			Sessions: []*models.Session{s.confirmedSession, s.pendingSession},
		}, nil)

	output, err := s.bookingService.ListSessions(s.ctx, &ListSessionsInput{UserID: s.testLearnerID})
	s.Require().NoError(err)
	s.Len(output.Sessions, 2)
}

func (s *BookingServiceTestSuite) TestBookRepoError() {
	s.mockUserRepo.EXPECT().
		GetUser(s.ctx, &userRepo.GetUserInput{UserID: s.testHostID}).
		Return(s.testHost, nil)

	s.mockLedgerRepo.EXPECT().
		GetBalance(s.ctx, &ledgerRepo.GetBalanceInput{UserID: s.testLearnerID}).
		Return(nil, errors.New("redis unavailable"))

	_, err := s.bookingService.Book(s.ctx, s.bookInput)
	s.Error(err)
	s.NotErrorIs(err, ErrInsufficientCredits)
}
