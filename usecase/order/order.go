package order

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/learnity/backend/domain"
	"github.com/learnity/backend/repository"
	"github.com/learnity/backend/usecase"
)

// UseCase handles course purchases and their side effects: enrollment
// on the user record (written through to the session cache), an admin
// notification, the purchased counter and a confirmation email.
type UseCase struct {
	orders     repository.OrderRepository
	courses    repository.CourseRepository
	users      repository.UserRepository
	sessions   repository.SessionCache
	buffer     usecase.OperationBuffer
	mailer     usecase.Mailer
	sessionTTL time.Duration
	logger     *zap.Logger
}

func New(
	orders repository.OrderRepository,
	courses repository.CourseRepository,
	users repository.UserRepository,
	sessions repository.SessionCache,
	buffer usecase.OperationBuffer,
	mailer usecase.Mailer,
	sessionTTL time.Duration,
	logger *zap.Logger,
) *UseCase {
	if sessionTTL <= 0 {
		sessionTTL = 7 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		orders:     orders,
		courses:    courses,
		users:      users,
		sessions:   sessions,
		buffer:     buffer,
		mailer:     mailer,
		sessionTTL: sessionTTL,
		logger:     logger,
	}
}

// Create places an order for the authenticated user. Store mutations
// commit before the confirmation email goes out: a delivery failure
// surfaces in the response but never rolls the purchase back.
func (uc *UseCase) Create(ctx context.Context, userID, courseID string, paymentInfo json.RawMessage) (*domain.Order, error) {
	user, err := uc.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.HasCourse(courseID) {
		return nil, domain.ErrAlreadyPurchased
	}

	course, err := uc.courses.GetByID(ctx, courseID)
	if err != nil {
		return nil, err
	}

	order, err := uc.orders.Create(ctx, &domain.Order{
		UserID:      user.ID,
		CourseID:    course.ID,
		PaymentInfo: paymentInfo,
	})
	if err != nil {
		return nil, err
	}

	// Enroll the user and write the new snapshot through to the
	// session cache so the purchase is visible on the next request.
	user.CourseIDs = append(user.CourseIDs, course.ID)
	if err := uc.users.Update(ctx, user); err != nil {
		return nil, err
	}
	if err := uc.sessions.Set(ctx, user, uc.sessionTTL); err != nil {
		return nil, err
	}

	if err := uc.buffer.BufferNotification(ctx, &domain.Notification{
		UserID:  user.ID,
		Title:   "New Order",
		Message: fmt.Sprintf("You have a new order from %s", course.Name),
	}); err != nil {
		uc.logger.Error("failed to record order notification", zap.Error(err))
	}
	if err := uc.buffer.BufferCounter(ctx, course.ID); err != nil {
		uc.logger.Error("failed to record purchased counter", zap.Error(err))
	}

	if err := uc.mailer.Send(ctx, user.Email, "Order Confirmation", "order_confirmation", map[string]any{
		"OrderID":    shortID(order.ID),
		"CourseName": course.Name,
		"Price":      course.Price,
		"Date":       order.CreatedAt.Format("January 2, 2006"),
	}); err != nil {
		return nil, err
	}

	uc.logger.Info("order created",
		zap.String("order_id", order.ID),
		zap.String("course_id", course.ID),
		zap.String("user_id", user.ID))
	return order, nil
}

func (uc *UseCase) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, error) {
	return uc.orders.List(ctx, filter)
}

// shortID keeps email receipts readable.
func shortID(id string) string {
	if len(id) > 6 {
		return id[:6]
	}
	return id
}
