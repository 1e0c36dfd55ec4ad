package swap

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"inthehaus-hr/internal/employee"
	employeeerrors "inthehaus-hr/internal/employee/errors"
	"inthehaus-hr/internal/events"
	"inthehaus-hr/internal/messaging/kafka"
	"inthehaus-hr/internal/roster"
	"inthehaus-hr/internal/shared/contextutil"
	swaperrors "inthehaus-hr/internal/swap/errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const aggregateType = "swap_request"

type EmployeeReader interface {
	FindByIDs(ctx context.Context, companyID string, ids []string) ([]employee.Employee, error)
}

//go:generate mockgen -source=swap_service.go -destination=mock/swap_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, companyID, requesterID string, req CreateSwapRequest) (SwapResponse, error)
	GetAll(ctx context.Context, companyID string, actor Actor, filter ListFilter) ([]SwapResponse, error)
	GetByID(ctx context.Context, companyID string, actor Actor, id string) (SwapResponse, error)
	Accept(ctx context.Context, companyID string, actor Actor, id string) (SwapResponse, error)
	Reject(ctx context.Context, companyID string, actor Actor, id string, req RejectSwapRequest) (SwapResponse, error)
	Cancel(ctx context.Context, companyID string, actor Actor, id string) (SwapResponse, error)
	Approve(ctx context.Context, companyID string, actor Actor, id string) (SwapResponse, error)
}

type service struct {
	db        *sql.DB
	repo      Repository
	roster    roster.Repository
	employees EmployeeReader
	outbox    kafka.OutboxRepository
	loc       *time.Location
	now       func() time.Time
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	rosterRepo roster.Repository,
	employees EmployeeReader,
	outbox kafka.OutboxRepository,
	loc *time.Location,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("swap.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("swap.service")
	}
	if loc == nil {
		loc = time.UTC
	}
	return &service{
		db:        db,
		repo:      repo,
		roster:    rosterRepo,
		employees: employees,
		outbox:    outbox,
		loc:       loc,
		now:       time.Now,
		logger:    l,
	}
}

func (s *service) Create(ctx context.Context, companyID, requesterID string, req CreateSwapRequest) (SwapResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	requesterDate, targetDate, err := s.parseDates(req)
	if err != nil {
		return SwapResponse{}, err
	}
	if requesterID == req.TargetID {
		return SwapResponse{}, swaperrors.ErrSelfSwap
	}

	requester, target, err := s.loadParties(ctx, companyID, requesterID, req.TargetID)
	if err != nil {
		return SwapResponse{}, err
	}
	if normalizePosition(requester.Position) != normalizePosition(target.Position) {
		return SwapResponse{}, swaperrors.ErrPositionMismatch
	}

	open, err := s.repo.CountOpenForRequesterDate(ctx, companyID, requesterID, requesterDate)
	if err != nil {
		return SwapResponse{}, err
	}
	if open > 0 {
		return SwapResponse{}, swaperrors.ErrDuplicateRequest
	}

	dates := []time.Time{requesterDate}
	if targetDate != nil {
		dates = append(dates, *targetDate)
	}
	resolver, err := s.resolverFor(ctx, s.roster, companyID, []string{requesterID, req.TargetID}, dates)
	if err != nil {
		return SwapResponse{}, err
	}
	if resolver.Resolve(requester.ID, requesterDate) == nil {
		return SwapResponse{}, swaperrors.ErrRequesterNotWorking
	}
	if targetDate != nil && resolver.Resolve(target.ID, *targetDate) == nil {
		return SwapResponse{}, swaperrors.ErrTargetNotWorking
	}

	swap := &SwapRequest{
		ID:            uuid.New(),
		CompanyID:     requester.CompanyID,
		RequesterID:   requester.ID,
		RequesterDate: requesterDate,
		TargetID:      target.ID,
		TargetDate:    targetDate,
		Reason:        strings.TrimSpace(req.Reason),
		Status:        StatusPending,
	}
	if err := s.repo.Create(ctx, swap); err != nil {
		s.logger.Error("create swap request failed", zap.String("request_id", rid), zap.Error(err))
		return SwapResponse{}, err
	}

	s.logger.Info("swap request created",
		zap.String("request_id", rid),
		zap.String("swap_request_id", swap.ID.String()),
		zap.String("requester_id", requesterID),
		zap.String("target_id", req.TargetID),
		zap.Bool("exchange", swap.IsExchange()),
	)
	return s.toResponse(*swap), nil
}

// GetAll scopes staff to requests they take part in.
func (s *service) GetAll(ctx context.Context, companyID string, actor Actor, filter ListFilter) ([]SwapResponse, error) {
	if !actor.Manager {
		filter.EmployeeID = actor.EmployeeID
	}
	rows, err := s.repo.FindAll(ctx, companyID, filter)
	if err != nil {
		s.logger.Error("list swap requests failed", zap.String("company_id", companyID), zap.Error(err))
		return nil, err
	}
	resp := make([]SwapResponse, len(rows))
	for i, r := range rows {
		resp[i] = s.toResponse(r)
	}
	return resp, nil
}

func (s *service) GetByID(ctx context.Context, companyID string, actor Actor, id string) (SwapResponse, error) {
	swap, err := s.repo.FindByID(ctx, companyID, id)
	if err != nil {
		return SwapResponse{}, mapNotFound(err)
	}
	if !actor.Manager && !isParticipant(swap, actor.EmployeeID) {
		return SwapResponse{}, swaperrors.ErrNotParticipant
	}
	return s.toResponse(*swap), nil
}

func (s *service) Accept(ctx context.Context, companyID string, actor Actor, id string) (SwapResponse, error) {
	return s.transition(ctx, companyID, id, StatusAccepted, func(swap *SwapRequest) error {
		if swap.TargetID.String() != actor.EmployeeID {
			return swaperrors.ErrNotParticipant
		}
		now := s.now()
		swap.RespondedAt = &now
		return nil
	})
}

// Reject is open to the target while the request is pending and to managers
// until it is approved.
func (s *service) Reject(ctx context.Context, companyID string, actor Actor, id string, req RejectSwapRequest) (SwapResponse, error) {
	return s.transition(ctx, companyID, id, StatusRejected, func(swap *SwapRequest) error {
		isTarget := swap.TargetID.String() == actor.EmployeeID && swap.Status == StatusPending
		if !isTarget && !actor.Manager {
			return swaperrors.ErrNotParticipant
		}
		now := s.now()
		if isTarget {
			swap.RespondedAt = &now
		}
		if by, err := uuid.Parse(actor.EmployeeID); err == nil {
			swap.RejectedBy = &by
		}
		swap.RejectReason = strings.TrimSpace(req.Reason)
		return nil
	})
}

func (s *service) Cancel(ctx context.Context, companyID string, actor Actor, id string) (SwapResponse, error) {
	return s.transition(ctx, companyID, id, StatusCancelled, func(swap *SwapRequest) error {
		if swap.RequesterID.String() != actor.EmployeeID {
			return swaperrors.ErrNotParticipant
		}
		return nil
	})
}

func (s *service) transition(
	ctx context.Context,
	companyID, id string,
	next Status,
	authorize func(*SwapRequest) error,
) (SwapResponse, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return SwapResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	swap, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return SwapResponse{}, mapNotFound(err)
	}
	if !swap.Status.CanTransition(next) {
		return SwapResponse{}, swaperrors.ErrInvalidTransition
	}
	if err := authorize(swap); err != nil {
		return SwapResponse{}, err
	}

	prev := swap.Status
	swap.Status = next
	if err := qtx.Update(ctx, swap); err != nil {
		s.logger.Error("update swap request failed", zap.String("swap_request_id", id), zap.Error(err))
		return SwapResponse{}, err
	}
	if err := tx.Commit(); err != nil {
		return SwapResponse{}, err
	}

	s.logger.Info("swap request transitioned",
		zap.String("swap_request_id", id),
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
	)
	return s.toResponse(*swap), nil
}

// Approve rewrites the roster for the swapped dates as frozen overrides and
// queues ShiftSwapApproved, all in one transaction. Overrides are upserted on
// (employee, date) so a retried approval converges on the same rows.
func (s *service) Approve(ctx context.Context, companyID string, actor Actor, id string) (SwapResponse, error) {
	rid := contextutil.GetRequestID(ctx)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("approve swap begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return SwapResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	swap, err := qtx.FindByIDForUpdate(ctx, companyID, id)
	if err != nil {
		return SwapResponse{}, mapNotFound(err)
	}
	if !swap.Status.CanTransition(StatusApproved) {
		return SwapResponse{}, swaperrors.ErrInvalidTransition
	}

	requester, target, err := s.loadParties(ctx, companyID, swap.RequesterID.String(), swap.TargetID.String())
	if err != nil {
		return SwapResponse{}, err
	}

	requesterDate := s.localDate(swap.RequesterDate)
	dates := []time.Time{requesterDate}
	var targetDate time.Time
	if swap.TargetDate != nil {
		targetDate = s.localDate(*swap.TargetDate)
		dates = append(dates, targetDate)
	}

	rtx := s.roster.WithTx(tx)
	resolver, err := s.resolverFor(ctx, rtx, companyID, []string{requester.ID.String(), target.ID.String()}, dates)
	if err != nil {
		return SwapResponse{}, err
	}

	given := resolver.Resolve(requester.ID, requesterDate)
	if given == nil {
		return SwapResponse{}, swaperrors.ErrRequesterNotWorking
	}
	if resolver.Resolve(target.ID, requesterDate) != nil {
		return SwapResponse{}, swaperrors.ErrTargetBusy
	}
	overrides := coverOverrides(swap, requester, target, requesterDate, given)

	if swap.IsExchange() {
		taken := resolver.Resolve(target.ID, targetDate)
		if taken == nil {
			return SwapResponse{}, swaperrors.ErrTargetNotWorking
		}
		if resolver.Resolve(requester.ID, targetDate) != nil {
			return SwapResponse{}, swaperrors.ErrRequesterBusy
		}
		overrides = append(overrides, coverOverrides(swap, target, requester, targetDate, taken)...)
	}

	for i := range overrides {
		if err := rtx.UpsertOverride(ctx, &overrides[i]); err != nil {
			s.logger.Error("approve swap upsert override failed",
				zap.String("request_id", rid),
				zap.String("swap_request_id", id),
				zap.Error(err),
			)
			return SwapResponse{}, err
		}
	}

	now := s.now()
	swap.Status = StatusApproved
	swap.ApprovedAt = &now
	if by, err := uuid.Parse(actor.EmployeeID); err == nil {
		swap.ApprovedBy = &by
	}
	if err := qtx.Update(ctx, swap); err != nil {
		return SwapResponse{}, err
	}

	if s.outbox != nil {
		event := events.ShiftSwapApprovedEvent{
			EventType:     events.ShiftSwapApprovedType,
			RequestID:     rid,
			SwapRequestID: swap.ID.String(),
			CompanyID:     companyID,
			RequesterID:   requester.ID.String(),
			RequesterName: requester.DisplayName(),
			RequesterMail: requester.Email,
			TargetID:      target.ID.String(),
			TargetName:    target.DisplayName(),
			TargetMail:    target.Email,
			RequesterDate: requesterDate.Format(roster.DateLayout),
			ShiftName:     given.ShiftName,
			ApprovedBy:    actor.EmployeeID,
			OccurredAt:    now.UTC(),
		}
		if swap.IsExchange() {
			event.TargetDate = targetDate.Format(roster.DateLayout)
		}
		outboxEvent, err := kafka.NewOutboxEvent(rid, aggregateType, swap.ID.String(), event.EventType, events.ShiftSwapApprovedTopic, event)
		if err != nil {
			return SwapResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, outboxEvent); err != nil {
			s.logger.Error("approve swap outbox persist failed", zap.String("swap_request_id", id), zap.Error(err))
			return SwapResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("approve swap commit failed", zap.String("request_id", rid), zap.Error(err))
		return SwapResponse{}, err
	}

	s.logger.Info("swap request approved",
		zap.String("request_id", rid),
		zap.String("swap_request_id", id),
		zap.Int("overrides", len(overrides)),
		zap.String("approved_by", actor.EmployeeID),
	)
	return s.toResponse(*swap), nil
}

// coverOverrides takes giver off day and puts taker on the giver's shift with
// its times frozen.
func coverOverrides(swap *SwapRequest, giver, taker *employee.Employee, day time.Time, a *roster.Assignment) []roster.RosterOverride {
	swapID := swap.ID
	return []roster.RosterOverride{
		{
			ID:            uuid.New(),
			CompanyID:     swap.CompanyID,
			EmployeeID:    giver.ID,
			OverrideDate:  day,
			IsOff:         true,
			SwapRequestID: &swapID,
			Note:          fmt.Sprintf("Swap: covered by %s", taker.DisplayName()),
		},
		{
			ID:              uuid.New(),
			CompanyID:       swap.CompanyID,
			EmployeeID:      taker.ID,
			OverrideDate:    day,
			ShiftID:         a.ShiftID,
			CustomStartTime: a.StartTime,
			CustomEndTime:   a.EndTime,
			SwapRequestID:   &swapID,
			Note:            fmt.Sprintf("Swap: covering %s", giver.DisplayName()),
		},
	}
}

func (s *service) resolverFor(
	ctx context.Context,
	repo roster.Repository,
	companyID string,
	employeeIDs []string,
	dates []time.Time,
) (*roster.Resolver, error) {
	weekly, err := repo.FindWeeklyByEmployees(ctx, companyID, employeeIDs)
	if err != nil {
		return nil, err
	}
	overrides, err := repo.FindOverridesForEmployees(ctx, companyID, employeeIDs, dates)
	if err != nil {
		return nil, err
	}
	shifts, err := repo.FindShifts(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return roster.NewResolver(weekly, overrides, shifts), nil
}

func (s *service) loadParties(ctx context.Context, companyID, requesterID, targetID string) (*employee.Employee, *employee.Employee, error) {
	if _, err := uuid.Parse(requesterID); err != nil {
		return nil, nil, employeeerrors.ErrInvalidEmployeeID
	}
	empls, err := s.employees.FindByIDs(ctx, companyID, []string{requesterID, targetID})
	if err != nil {
		return nil, nil, err
	}

	var requester, target *employee.Employee
	for i := range empls {
		switch empls[i].ID.String() {
		case requesterID:
			requester = &empls[i]
		case targetID:
			target = &empls[i]
		}
	}
	if requester == nil || target == nil {
		return nil, nil, employeeerrors.ErrEmployeeNotFound
	}
	if !requester.IsActive || !target.IsActive {
		return nil, nil, employeeerrors.ErrEmployeeInactive
	}
	return requester, target, nil
}

func (s *service) parseDates(req CreateSwapRequest) (time.Time, *time.Time, error) {
	today := s.localDate(s.now())

	requesterDate, err := roster.ParseDate(req.RequesterDate, s.loc)
	if err != nil {
		return time.Time{}, nil, swaperrors.ErrInvalidDate
	}
	if requesterDate.Before(today) {
		return time.Time{}, nil, swaperrors.ErrDateInPast
	}
	if strings.TrimSpace(req.TargetDate) == "" {
		return requesterDate, nil, nil
	}

	targetDate, err := roster.ParseDate(req.TargetDate, s.loc)
	if err != nil {
		return time.Time{}, nil, swaperrors.ErrInvalidDate
	}
	if targetDate.Before(today) {
		return time.Time{}, nil, swaperrors.ErrDateInPast
	}
	return requesterDate, &targetDate, nil
}

// localDate keeps the calendar date of t and moves it to midnight in the
// restaurant's zone. DATE columns come back as UTC midnight.
func (s *service) localDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, s.loc)
}

func (s *service) toResponse(r SwapRequest) SwapResponse {
	resp := SwapResponse{
		ID:            r.ID.String(),
		RequesterID:   r.RequesterID.String(),
		RequesterDate: r.RequesterDate.Format(roster.DateLayout),
		TargetID:      r.TargetID.String(),
		Reason:        r.Reason,
		Status:        r.Status,
		RejectReason:  r.RejectReason,
	}
	if r.TargetDate != nil {
		v := r.TargetDate.Format(roster.DateLayout)
		resp.TargetDate = &v
	}
	if r.RespondedAt != nil {
		v := r.RespondedAt.Format(time.RFC3339)
		resp.RespondedAt = &v
	}
	if r.ApprovedBy != nil {
		v := r.ApprovedBy.String()
		resp.ApprovedBy = &v
	}
	if r.ApprovedAt != nil {
		v := r.ApprovedAt.Format(time.RFC3339)
		resp.ApprovedAt = &v
	}
	return resp
}

func normalizePosition(p string) string {
	return strings.ToLower(strings.Join(strings.Fields(p), " "))
}

func isParticipant(r *SwapRequest, employeeID string) bool {
	return r.RequesterID.String() == employeeID || r.TargetID.String() == employeeID
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return swaperrors.ErrSwapNotFound
	}
	return err
}
