package employee

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"dayflow-hrms/internal/domain"
	employeeerrors "dayflow-hrms/internal/employee/errors"
	"dayflow-hrms/internal/employeesalary"
	"dayflow-hrms/internal/events"
	"dayflow-hrms/internal/messaging/kafka"
	"dayflow-hrms/internal/shared/contextutil"
	"dayflow-hrms/internal/shared/counter"
	"dayflow-hrms/internal/user"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	EmployeeOptionsKey = "employees:options"
	optionsCacheTTL    = time.Hour
	dateLayout         = "2006-01-02"
	employeeCodeScope  = "employee"
)

// FieldAuthorizer is satisfied by rbac.Service.
type FieldAuthorizer interface {
	AuthorizeFields(role, entity string, fieldPaths []string) error
}

type Service interface {
	Create(ctx context.Context, actorRole string, req CreateEmployeeRequest) (CreateEmployeeResponse, error)
	GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, int64, error)
	GetOptions(ctx context.Context) ([]EmployeeOption, error)
	GetByID(ctx context.Context, id string) (EmployeeResponse, error)
	Update(ctx context.Context, actorRole, id string, req UpdateEmployeeRequest) (EmployeeResponse, error)
	UpdateStatus(ctx context.Context, id string, status string) (EmployeeResponse, error)
	Delete(ctx context.Context, id string) error
}

type service struct {
	db          *sql.DB
	repo        Repository
	users       user.Repository
	counter     counter.Repository
	outbox      kafka.OutboxRepository
	fields      FieldAuthorizer
	rdb         *redis.Client
	sf          *singleflight.Group
	companyName string
	now         func() time.Time
	logger      *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	users user.Repository,
	counter counter.Repository,
	outboxRepo kafka.OutboxRepository,
	fields FieldAuthorizer,
	rdb *redis.Client,
	companyName string,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("employee.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("employee.service")
	}
	return &service{
		db:          db,
		repo:        repo,
		users:       users,
		counter:     counter,
		outbox:      outboxRepo,
		fields:      fields,
		rdb:         rdb,
		sf:          &singleflight.Group{},
		companyName: companyName,
		now:         time.Now,
		logger:      l,
	}
}

func (s *service) Create(
	ctx context.Context,
	actorRole string,
	req CreateEmployeeRequest,
) (CreateEmployeeResponse, error) {
	rid := contextutil.GetRequestID(ctx)
	log := contextutil.GetLogger(ctx, s.logger)
	email := normalizeEmail(req.Email)

	log.Debug("create employee requested",
		zap.String("request_id", rid),
		zap.String("department", req.JobDetails.Department),
	)

	role := req.Role
	if role == "" {
		role = domain.RoleEmployee
	}
	if domain.IsPrivilegedRole(role) && actorRole != domain.RoleAdmin {
		log.Warn("create employee privileged role rejected", zap.String("actor_role", actorRole), zap.String("role", role))
		return CreateEmployeeResponse{}, employeeerrors.ErrRoleNotAssignable
	}

	joiningDate := s.now().UTC().Truncate(24 * time.Hour)
	if req.JobDetails.JoiningDate != "" {
		d, err := time.Parse(dateLayout, req.JobDetails.JoiningDate)
		if err != nil {
			return CreateEmployeeResponse{}, employeeerrors.ErrInvalidDate.WithDetails(map[string]string{"field": "jobDetails.joiningDate"})
		}
		joiningDate = d
	}
	dob, err := parseOptionalDate(req.PersonalDetails.DateOfBirth, "personalDetails.dateOfBirth")
	if err != nil {
		return CreateEmployeeResponse{}, err
	}

	salary := employeesalary.DefaultSalaryInfo()
	if req.MonthWage != nil {
		if err := salary.Apply(employeesalary.Update{MonthWage: req.MonthWage}); err != nil {
			return CreateEmployeeResponse{}, err
		}
	}

	tempPassword, err := user.GenerateTemporaryPassword()
	if err != nil {
		return CreateEmployeeResponse{}, err
	}
	hashed, err := user.HashPassword(tempPassword)
	if err != nil {
		log.Error("create employee hash password failed", zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create employee begin tx failed", zap.String("request_id", rid), zap.Error(err))
		return CreateEmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	utx := s.users.WithTx(tx)
	ctr := s.counter.WithTx(tx)

	exists, err := utx.ExistsByEmail(ctx, email)
	if err != nil {
		log.Error("create employee email lookup failed", zap.Error(err))
		return CreateEmployeeResponse{}, err
	}
	if exists {
		return CreateEmployeeResponse{}, employeeerrors.ErrEmployeeAlreadyExists
	}

	codeSerial, err := ctr.GetNextValue(ctx, employeeCodeScope, counter.TypeEmployeeCode)
	if err != nil {
		log.Error("create employee generate code failed", zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	scope, counterType := loginIDCounter(s.companyName, joiningDate.Year())
	loginSerial, err := ctr.GetNextValue(ctx, scope, counterType)
	if err != nil {
		log.Error("create employee generate login id failed", zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	empl := &Employee{
		ID:           uuid.New(),
		EmployeeCode: FormatEmployeeCode(codeSerial),
		LoginID: BuildLoginID(
			s.companyName,
			req.PersonalDetails.FirstName,
			req.PersonalDetails.LastName,
			joiningDate.Year(),
			loginSerial,
		),
		PersonalDetails: PersonalDetails{
			FirstName:     strings.TrimSpace(req.PersonalDetails.FirstName),
			LastName:      strings.TrimSpace(req.PersonalDetails.LastName),
			Email:         email,
			Phone:         strings.TrimSpace(req.PersonalDetails.Phone),
			Address:       strings.TrimSpace(req.PersonalDetails.Address),
			DateOfBirth:   dob,
			Gender:        req.PersonalDetails.Gender,
			MaritalStatus: req.PersonalDetails.MaritalStatus,
			Nationality:   strings.TrimSpace(req.PersonalDetails.Nationality),
			BankDetails:   toBankDetails(req.PersonalDetails.BankDetails),
		},
		JobDetails: JobDetails{
			Designation:    strings.TrimSpace(req.JobDetails.Designation),
			Department:     strings.TrimSpace(req.JobDetails.Department),
			JoiningDate:    joiningDate,
			EmploymentType: defaultString(req.JobDetails.EmploymentType, "full-time"),
			Manager:        strings.TrimSpace(req.JobDetails.Manager),
			Location:       strings.TrimSpace(req.JobDetails.Location),
		},
		Status:     StatusActive,
		SalaryInfo: salary,
	}

	if err := qtx.Create(ctx, empl); err != nil {
		log.Error("create employee persist failed", zap.Error(err))
		return CreateEmployeeResponse{}, mapRepositoryError(err)
	}

	account := &user.User{
		ID:         uuid.New(),
		EmployeeID: empl.ID,
		LoginID:    empl.LoginID,
		Email:      email,
		Password:   hashed,
		Role:       role,
		IsActive:   true,
	}
	if err := utx.Create(ctx, account); err != nil {
		log.Error("create employee user account failed", zap.Error(err))
		return CreateEmployeeResponse{}, mapRepositoryError(err)
	}

	if s.outbox != nil {
		event, err := kafka.NewOutboxEvent(
			"employee",
			empl.ID.String(),
			events.EmployeeCreated,
			events.EmployeeLifecycleTopic,
			rid,
			events.EmployeeCreatedEvent{
				EventType:    events.EmployeeCreated,
				RequestID:    rid,
				EmployeeID:   empl.ID.String(),
				EmployeeCode: empl.EmployeeCode,
				LoginID:      empl.LoginID,
				FullName:     empl.FullName(),
				Email:        email,
				Department:   empl.JobDetails.Department,
				Designation:  empl.JobDetails.Designation,
				OccurredAt:   s.now().UTC(),
			},
		)
		if err != nil {
			log.Error("create employee build event failed", zap.Error(err))
			return CreateEmployeeResponse{}, err
		}
		if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
			log.Error("create employee outbox persist failed",
				zap.String("employee_id", empl.ID.String()),
				zap.Error(err),
			)
			return CreateEmployeeResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("create employee commit failed", zap.String("request_id", rid), zap.Error(err))
		return CreateEmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)

	log.Info("create employee success",
		zap.String("request_id", rid),
		zap.String("employee_id", empl.ID.String()),
		zap.String("login_id", empl.LoginID),
	)

	return CreateEmployeeResponse{
		Employee:          mapToResponse(*empl),
		LoginID:           empl.LoginID,
		TemporaryPassword: tempPassword,
	}, nil
}

func (s *service) GetAll(ctx context.Context, filter ListFilter) ([]EmployeeResponse, int64, error) {
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, 0, employeeerrors.ErrInvalidStatus
	}

	employees, total, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all employees failed", zap.Error(err))
		return nil, 0, mapRepositoryError(err)
	}

	return mapToListResponse(employees), total, nil
}

func (s *service) GetOptions(ctx context.Context) ([]EmployeeOption, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, EmployeeOptionsKey).Result(); err == nil {
			var resp []EmployeeOption
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(EmployeeOptionsKey, func() (interface{}, error) {
		employees, err := s.repo.FindOptions(ctx)
		if err != nil {
			return nil, mapRepositoryError(err)
		}

		resp := make([]EmployeeOption, len(employees))
		for i, e := range employees {
			resp[i] = EmployeeOption{
				ID:         e.ID.String(),
				Name:       e.FullName(),
				Department: e.JobDetails.Department,
			}
		}

		if s.rdb != nil {
			if data, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, EmployeeOptionsKey, data, optionsCacheTTL).Err(); err != nil {
					s.logger.Warn("cache employee options failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		return nil, err
	}

	return v.([]EmployeeOption), nil
}

func (s *service) GetByID(ctx context.Context, id string) (EmployeeResponse, error) {
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	return mapToResponse(*empl), nil
}

// Update applies a partial change. Every field it touches must be writable
// by actorRole; otherwise nothing is written and the denied paths are returned.
func (s *service) Update(
	ctx context.Context,
	actorRole, id string,
	req UpdateEmployeeRequest,
) (EmployeeResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("employee_id", id))

	paths := req.FieldPaths()
	if len(paths) == 0 {
		return EmployeeResponse{}, employeeerrors.ErrEmptyUpdate
	}
	if err := s.fields.AuthorizeFields(actorRole, "employee", paths); err != nil {
		log.Warn("update employee fields denied", zap.String("role", actorRole), zap.Strings("fields", paths))
		return EmployeeResponse{}, err
	}
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update employee begin tx failed", zap.Error(err))
		return EmployeeResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)

	empl, err := qtx.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := applyPatch(empl, req); err != nil {
		return EmployeeResponse{}, err
	}

	if err := qtx.Update(ctx, empl); err != nil {
		log.Error("update employee persist failed", zap.Error(err))
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("update employee commit failed", zap.Error(err))
		return EmployeeResponse{}, err
	}

	s.invalidateOptions(ctx)
	log.Info("update employee success", zap.Strings("fields", paths))

	return mapToResponse(*empl), nil
}

func (s *service) UpdateStatus(ctx context.Context, id string, status string) (EmployeeResponse, error) {
	if !IsValidStatus(status) {
		return EmployeeResponse{}, employeeerrors.ErrInvalidStatus
	}
	if _, err := uuid.Parse(id); err != nil {
		return EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
	}

	if err := s.repo.UpdateStatus(ctx, id, status); err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	empl, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return EmployeeResponse{}, mapRepositoryError(err)
	}

	s.invalidateOptions(ctx)
	s.logger.Info("employee status updated", zap.String("employee_id", id), zap.String("status", status))

	return mapToResponse(*empl), nil
}

// Delete removes the employee together with its login account.
func (s *service) Delete(ctx context.Context, id string) error {
	log := contextutil.GetLogger(ctx, s.logger).With(zap.String("employee_id", id))

	if _, err := uuid.Parse(id); err != nil {
		return employeeerrors.ErrEmployeeNotFound
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete employee begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if err := s.users.WithTx(tx).DeleteByEmployeeID(ctx, id); err != nil {
		log.Error("delete employee user account failed", zap.Error(err))
		return err
	}

	if err := s.repo.WithTx(tx).Delete(ctx, id); err != nil {
		return mapRepositoryError(err)
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete employee commit failed", zap.Error(err))
		return err
	}

	s.invalidateOptions(ctx)
	log.Info("delete employee success")
	return nil
}

func (s *service) invalidateOptions(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, EmployeeOptionsKey).Err(); err != nil {
		s.logger.Error("failed to invalidate employee options cache",
			zap.Error(err),
			zap.String("key", EmployeeOptionsKey),
		)
	}
}

func applyPatch(empl *Employee, req UpdateEmployeeRequest) error {
	if p := req.PersonalDetails; p != nil {
		pd := &empl.PersonalDetails
		setString(&pd.FirstName, p.FirstName)
		setString(&pd.LastName, p.LastName)
		setString(&pd.Phone, p.Phone)
		setString(&pd.Address, p.Address)
		setString(&pd.Gender, p.Gender)
		setString(&pd.MaritalStatus, p.MaritalStatus)
		setString(&pd.Nationality, p.Nationality)
		if p.DateOfBirth != nil {
			dob, err := parseOptionalDate(*p.DateOfBirth, "personalDetails.dateOfBirth")
			if err != nil {
				return err
			}
			pd.DateOfBirth = dob
		}
		if p.BankDetails != nil {
			pd.BankDetails = toBankDetails(p.BankDetails)
		}
	}

	if j := req.JobDetails; j != nil {
		jd := &empl.JobDetails
		setString(&jd.Designation, j.Designation)
		setString(&jd.Department, j.Department)
		setString(&jd.EmploymentType, j.EmploymentType)
		setString(&jd.Manager, j.Manager)
		setString(&jd.Location, j.Location)
		if j.JoiningDate != nil {
			d, err := time.Parse(dateLayout, *j.JoiningDate)
			if err != nil {
				return employeeerrors.ErrInvalidDate.WithDetails(map[string]string{"field": "jobDetails.joiningDate"})
			}
			jd.JoiningDate = d
		}
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = strings.TrimSpace(*v)
	}
}

func defaultString(v, fallback string) string {
	if v == "" {
		return fallback
	}
	return v
}

func parseOptionalDate(v, field string) (*time.Time, error) {
	if strings.TrimSpace(v) == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, employeeerrors.ErrInvalidDate.WithDetails(map[string]string{"field": field})
	}
	return &d, nil
}

func toBankDetails(in *BankDetailsInput) BankDetails {
	if in == nil {
		return BankDetails{}
	}
	return BankDetails{
		AccountNumber: strings.TrimSpace(in.AccountNumber),
		BankName:      strings.TrimSpace(in.BankName),
		IFSCCode:      strings.ToUpper(strings.TrimSpace(in.IFSCCode)),
		PANNo:         strings.ToUpper(strings.TrimSpace(in.PANNo)),
		UANNo:         strings.TrimSpace(in.UANNo),
	}
}

func mapToResponse(e Employee) EmployeeResponse {
	pd := e.PersonalDetails
	resp := EmployeeResponse{
		ID:           e.ID.String(),
		EmployeeCode: e.EmployeeCode,
		LoginID:      e.LoginID,
		Status:       e.Status,
		PersonalDetails: PersonalDetailsResponse{
			FirstName:     pd.FirstName,
			LastName:      pd.LastName,
			FullName:      e.FullName(),
			Email:         pd.Email,
			Phone:         pd.Phone,
			Address:       pd.Address,
			Gender:        pd.Gender,
			MaritalStatus: pd.MaritalStatus,
			Nationality:   pd.Nationality,
			BankDetails: BankDetailsResponse{
				AccountNumber: pd.BankDetails.AccountNumber,
				BankName:      pd.BankDetails.BankName,
				IFSCCode:      pd.BankDetails.IFSCCode,
				PANNo:         pd.BankDetails.PANNo,
				UANNo:         pd.BankDetails.UANNo,
			},
		},
		JobDetails: JobDetailsResponse{
			Designation:    e.JobDetails.Designation,
			Department:     e.JobDetails.Department,
			JoiningDate:    e.JobDetails.JoiningDate.Format(dateLayout),
			EmploymentType: e.JobDetails.EmploymentType,
			Manager:        e.JobDetails.Manager,
			Location:       e.JobDetails.Location,
		},
		CreatedAt: e.CreatedAt.Format(time.RFC3339),
		UpdatedAt: e.UpdatedAt.Format(time.RFC3339),
	}
	if pd.DateOfBirth != nil {
		resp.PersonalDetails.DateOfBirth = pd.DateOfBirth.Format(dateLayout)
	}
	return resp
}

func mapToListResponse(employees []Employee) []EmployeeResponse {
	res := make([]EmployeeResponse, len(employees))
	for i, e := range employees {
		res[i] = mapToResponse(e)
	}
	return res
}
