package payroll

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"strings"
	"time"

	payrollerrors "dayflow-hrms/internal/payroll/errors"
	"dayflow-hrms/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

type Service interface {
	// CreateOrUpdate reports created=true when a new record was inserted.
	CreateOrUpdate(ctx context.Context, req UpsertPayrollRequest) (resp PayrollResponse, created bool, err error)
	GetByEmployee(ctx context.Context, employeeID string) (PayrollResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]PayrollResponse, int64, error)
	Delete(ctx context.Context, id string) error
	Payslip(ctx context.Context, employeeID string) ([]byte, error)
}

type service struct {
	db              *sql.DB
	repo            Repository
	defaultCurrency string
	now             func() time.Time
	logger          *zap.Logger
}

func NewService(db *sql.DB, repo Repository, defaultCurrency string, logger ...*zap.Logger) Service {
	l := zap.L().Named("payroll.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("payroll.service")
	}
	if defaultCurrency == "" {
		defaultCurrency = DefaultCurrency
	}
	return &service{
		db:              db,
		repo:            repo,
		defaultCurrency: defaultCurrency,
		now:             time.Now,
		logger:          l,
	}
}

func (s *service) CreateOrUpdate(ctx context.Context, req UpsertPayrollRequest) (PayrollResponse, bool, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("employee_id", req.EmployeeID))
	log.Debug("upsert payroll requested")

	if err := validateAmounts(req); err != nil {
		log.Warn("upsert payroll rejected", zap.Error(err))
		return PayrollResponse{}, false, err
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return PayrollResponse{}, false, payrollerrors.ErrEmployeeNotFound
	}

	var effectiveFrom *time.Time
	if req.EffectiveFrom != nil {
		d, err := time.Parse(dateLayout, strings.TrimSpace(*req.EffectiveFrom))
		if err != nil {
			return PayrollResponse{}, false, payrollerrors.ErrInvalidDateFormat.WithDetails(map[string]string{"field": "effectiveFrom"})
		}
		effectiveFrom = &d
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("upsert payroll begin tx failed", zap.Error(err))
		return PayrollResponse{}, false, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	exists, err := qtx.EmployeeExists(ctx, req.EmployeeID)
	if err != nil {
		log.Error("upsert payroll employee lookup failed", zap.Error(err))
		return PayrollResponse{}, false, err
	}
	if !exists {
		return PayrollResponse{}, false, payrollerrors.ErrEmployeeNotFound
	}

	record, err := qtx.FindByEmployeeID(ctx, req.EmployeeID)
	created := false
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		if req.BasicSalary == nil {
			return PayrollResponse{}, false, payrollerrors.ErrBasicSalaryRequired
		}
		created = true
		record = &Payroll{
			ID:            uuid.New(),
			EmployeeID:    employeeID,
			EffectiveFrom: s.now().UTC().Truncate(24 * time.Hour),
			Currency:      s.defaultCurrency,
		}
	case err != nil:
		log.Error("upsert payroll lookup failed", zap.Error(err))
		return PayrollResponse{}, false, err
	}

	mergeRequest(record, req, effectiveFrom)
	recomputeNetSalary(record)

	if created {
		err = qtx.Create(ctx, record)
	} else {
		err = qtx.Update(ctx, record)
	}
	if err != nil {
		log.Error("upsert payroll persist failed", zap.Bool("created", created), zap.Error(err))
		return PayrollResponse{}, false, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("upsert payroll commit failed", zap.Error(err))
		return PayrollResponse{}, false, err
	}

	log.Info("upsert payroll success",
		zap.String("payroll_id", record.ID.String()),
		zap.Bool("created", created),
		zap.String("net_salary", record.NetSalary.StringFixed(2)),
	)

	return mapToResponse(*record), created, nil
}

func (s *service) GetByEmployee(ctx context.Context, employeeID string) (PayrollResponse, error) {
	record, err := s.findByEmployee(ctx, employeeID)
	if err != nil {
		return PayrollResponse{}, err
	}
	return mapToResponse(*record), nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]PayrollResponse, int64, error) {
	payrolls, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all payrolls failed", zap.Error(err))
		return nil, 0, err
	}

	res := make([]PayrollResponse, len(payrolls))
	for i, p := range payrolls {
		res[i] = mapToResponse(p)
	}
	return res, total, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return payrollerrors.ErrPayrollNotFound
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	contextutil.GetLogger(ctx, s.logger).Info("payroll deleted", zap.String("payroll_id", id))
	return nil
}

func (s *service) Payslip(ctx context.Context, employeeID string) ([]byte, error) {
	record, err := s.findByEmployee(ctx, employeeID)
	if err != nil {
		return nil, err
	}

	pdf, err := renderPayslip(*record, s.now())
	if err != nil {
		s.logger.Error("render payslip failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	return pdf, nil
}

func (s *service) findByEmployee(ctx context.Context, employeeID string) (*Payroll, error) {
	if _, err := uuid.Parse(employeeID); err != nil {
		return nil, payrollerrors.ErrPayrollNotFound
	}
	record, err := s.repo.FindByEmployeeID(ctx, employeeID)
	if err != nil {
		return nil, mapRepositoryError(err)
	}
	return record, nil
}

// mergeRequest copies every supplied field onto p. Allowance and deduction
// keys the caller omitted keep their previous values.
func mergeRequest(p *Payroll, req UpsertPayrollRequest, effectiveFrom *time.Time) {
	setAmount(&p.BasicSalary, req.BasicSalary)

	if a := req.Allowances; a != nil {
		setAmount(&p.Allowances.HRA, a.HRA)
		setAmount(&p.Allowances.Transport, a.Transport)
		setAmount(&p.Allowances.Medical, a.Medical)
		setAmount(&p.Allowances.Other, a.Other)
	}
	if d := req.Deductions; d != nil {
		setAmount(&p.Deductions.Tax, d.Tax)
		setAmount(&p.Deductions.ProvidentFund, d.ProvidentFund)
		setAmount(&p.Deductions.Other, d.Other)
	}
	if effectiveFrom != nil {
		p.EffectiveFrom = *effectiveFrom
	}
	if req.Currency != nil {
		p.Currency = strings.ToUpper(strings.TrimSpace(*req.Currency))
	}
}

func setAmount(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = v.Round(2)
	}
}

func validateAmounts(req UpsertPayrollRequest) error {
	fields := map[string]*decimal.Decimal{"basicSalary": req.BasicSalary}
	if a := req.Allowances; a != nil {
		fields["allowances.hra"] = a.HRA
		fields["allowances.transport"] = a.Transport
		fields["allowances.medical"] = a.Medical
		fields["allowances.other"] = a.Other
	}
	if d := req.Deductions; d != nil {
		fields["deductions.tax"] = d.Tax
		fields["deductions.providentFund"] = d.ProvidentFund
		fields["deductions.other"] = d.Other
	}

	var negative []string
	for name, v := range fields {
		if v != nil && v.IsNegative() {
			negative = append(negative, name)
		}
	}
	if len(negative) > 0 {
		sort.Strings(negative)
		return payrollerrors.ErrInvalidMoneyValue.WithDetails(map[string][]string{"fields": negative})
	}
	return nil
}

func mapToResponse(p Payroll) PayrollResponse {
	resp := PayrollResponse{
		ID:          p.ID.String(),
		EmployeeID:  p.EmployeeID.String(),
		BasicSalary: p.BasicSalary,
		Allowances: AllowancesResponse{
			HRA:       p.Allowances.HRA,
			Transport: p.Allowances.Transport,
			Medical:   p.Allowances.Medical,
			Other:     p.Allowances.Other,
		},
		Deductions: DeductionsResponse{
			Tax:           p.Deductions.Tax,
			ProvidentFund: p.Deductions.ProvidentFund,
			Other:         p.Deductions.Other,
		},
		NetSalary:     p.NetSalary,
		EffectiveFrom: p.EffectiveFrom.Format(dateLayout),
		Currency:      p.Currency,
		CreatedAt:     p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:     p.UpdatedAt.Format(time.RFC3339),
	}
	if p.Employee != nil {
		resp.EmployeeName = strings.TrimSpace(p.Employee.FirstName + " " + p.Employee.LastName)
	}
	return resp
}
