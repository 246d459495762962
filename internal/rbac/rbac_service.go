package rbac

import (
	"sort"
	"strings"

	"dayflow-hrms/internal/domain"
	rbacerrors "dayflow-hrms/internal/rbac/errors"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	Enforce(req domain.EnforceRequest) (bool, error)
	AuthorizeFields(role, entity string, fieldPaths []string) error
	PermissionsFor(role string) ([]PermissionResponse, error)
}

type service struct {
	enforcer *casbin.SyncedEnforcer
	logger   *zap.Logger
}

func NewService(enforcer *casbin.SyncedEnforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{enforcer: enforcer, logger: l}
}

func (s *service) Enforce(req domain.EnforceRequest) (bool, error) {
	if !domain.IsValidRole(req.Role) {
		return false, nil
	}

	allowed, err := s.enforcer.Enforce(req.Role, req.Resource, req.Action)
	if err != nil {
		s.logger.Error("enforce failed",
			zap.String("role", req.Role),
			zap.String("resource", req.Resource),
			zap.String("action", req.Action),
			zap.Error(err),
		)
		return false, err
	}

	s.logger.Debug("enforce result",
		zap.String("role", req.Role),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

// AuthorizeFields checks every dotted field path a write touches and reports
// all denied paths at once.
func (s *service) AuthorizeFields(role, entity string, fieldPaths []string) error {
	if !domain.IsValidRole(role) {
		return rbacerrors.ErrUnknownRole
	}

	var denied []string
	for _, path := range fieldPaths {
		obj := FieldObject(entity, strings.ReplaceAll(path, ".", "/"))
		allowed, err := s.enforcer.Enforce(role, obj, ActionWrite)
		if err != nil {
			return err
		}
		if !allowed {
			denied = append(denied, path)
		}
	}

	if len(denied) > 0 {
		s.logger.Warn("field write denied",
			zap.String("role", role),
			zap.String("entity", entity),
			zap.Strings("fields", denied),
		)
		return rbacerrors.ErrFieldsNotWritable.WithDetails(map[string][]string{"fields": denied})
	}
	return nil
}

func (s *service) PermissionsFor(role string) ([]PermissionResponse, error) {
	if !domain.IsValidRole(role) {
		return nil, rbacerrors.ErrUnknownRole
	}

	rules, err := s.enforcer.GetImplicitPermissionsForUser(role)
	if err != nil {
		return nil, err
	}

	resp := make([]PermissionResponse, 0, len(rules))
	for _, r := range rules {
		if len(r) < 3 {
			continue
		}
		resp = append(resp, PermissionResponse{
			GrantedTo: r[0],
			Object:    r[1],
			Action:    r[2],
		})
	}

	sort.Slice(resp, func(i, j int) bool {
		if resp[i].Object == resp[j].Object {
			return resp[i].Action < resp[j].Action
		}
		return resp[i].Object < resp[j].Object
	})
	return resp, nil
}
