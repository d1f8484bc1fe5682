package bookingtype

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/dbmetrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/psqlbuilder"
)

var ruleColumns = []string{"id", "booking_type_id", "day_of_week", "start_minute", "end_minute", "created_at"}

// AddRule добавляет правило доступности
func (r *Repository) AddRule(ctx context.Context, rule *domain.AvailabilityRule) (*domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_rules").
		Columns("booking_type_id", "day_of_week", "start_minute", "end_minute").
		Values(rule.BookingTypeID, int(rule.DayOfWeek), int(rule.StartTime), int(rule.EndTime)).
		Suffix("RETURNING id, created_at").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: AddRule - build insert query: %v", ErrBuildQuery, err)
	}

	if err := executor.QueryRowContext(ctx, query, args...).Scan(&rule.ID, &rule.CreatedAt); err != nil {
		return nil, fmt.Errorf("%w: AddRule - execute insert: %w", ErrExecQuery, err)
	}

	return rule, nil
}

// DeleteRule удаляет правило типа бронирования
func (r *Repository) DeleteRule(ctx context.Context, bookingTypeID, ruleID int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("availability_rules").
		Where(squirrel.Eq{"id": ruleID, "booking_type_id": bookingTypeID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: DeleteRule - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: DeleteRule - execute delete: %w", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: DeleteRule - get rows affected: %w", ErrExecQuery, err)
	}
	if rowsAffected == 0 {
		return ErrRuleNotFound
	}

	return nil
}

// ListRules все правила типа бронирования
func (r *Repository) ListRules(ctx context.Context, bookingTypeID int64) ([]domain.AvailabilityRule, error) {
	return r.listRules(ctx, "ListRules", squirrel.Eq{"booking_type_id": bookingTypeID})
}

// ListRulesForDay правила типа на один день недели
func (r *Repository) ListRulesForDay(ctx context.Context, bookingTypeID int64, day time.Weekday) ([]domain.AvailabilityRule, error) {
	return r.listRules(ctx, "ListRulesForDay", squirrel.Eq{"booking_type_id": bookingTypeID, "day_of_week": int(day)})
}

func (r *Repository) listRules(ctx context.Context, op string, where squirrel.Sqlizer) ([]domain.AvailabilityRule, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(ruleColumns...).
		From("availability_rules").
		Where(where).
		OrderBy("day_of_week ASC", "start_minute ASC", "id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %w", ErrExecQuery, op, err)
	}
	defer rows.Close()

	rules := make([]domain.AvailabilityRule, 0)
	for rows.Next() {
		var (
			rule                  domain.AvailabilityRule
			day, startMin, endMin int
		)
		if err := rows.Scan(&rule.ID, &rule.BookingTypeID, &day, &startMin, &endMin, &rule.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %w", ErrScanRow, op, err)
		}
		rule.DayOfWeek = time.Weekday(day)
		rule.StartTime = domain.MinuteOfDay(startMin)
		rule.EndTime = domain.MinuteOfDay(endMin)
		rules = append(rules, rule)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %w", ErrScanRow, op, err)
	}

	return rules, nil
}
