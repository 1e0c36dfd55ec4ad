package rbac

import (
	"strings"
	"sync"

	"inthehaus-hr/internal/domain"

	"github.com/casbin/casbin/v2"
	"go.uber.org/zap"
)

type EnforceRequest = domain.EnforceRequest

//go:generate mockgen -source=rbac_service.go -destination=mock/rbac_service_mock.go -package=mock
type Service interface {
	LoadCompanyPolicy(companyID string) error
	Enforce(req EnforceRequest) (bool, error)
}

type service struct {
	repo     Repository
	enforcer *casbin.Enforcer
	mu       sync.Mutex
	logger   *zap.Logger
}

func NewService(repo Repository, enforcer *casbin.Enforcer, logger ...*zap.Logger) Service {
	l := zap.L().Named("rbac.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("rbac.service")
	}
	return &service{repo: repo, enforcer: enforcer, logger: l}
}

func (s *service) LoadCompanyPolicy(companyID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.loadCompanyPolicyUnlocked(companyID)
}

func (s *service) loadCompanyPolicyUnlocked(companyID string) error {
	s.enforcer.ClearPolicy()

	employeeRoles, err := s.repo.GetEmployeeRoles(companyID)
	if err != nil {
		return err
	}
	for _, er := range employeeRoles {
		if _, err := s.enforcer.AddGroupingPolicy(er.EmployeeID, normalizeRole(er.Role), companyID); err != nil {
			return err
		}
	}

	rolePerms, err := s.repo.GetRolePermissions(companyID)
	if err != nil {
		return err
	}
	if len(rolePerms) == 0 {
		rolePerms = defaultPermissions()
	}
	for _, rp := range rolePerms {
		if _, err := s.enforcer.AddPolicy(normalizeRole(rp.Role), companyID, rp.Resource, rp.Action); err != nil {
			return err
		}
	}

	s.logger.Debug("company policy loaded",
		zap.String("company_id", companyID),
		zap.Int("employee_roles", len(employeeRoles)),
		zap.Int("role_permissions", len(rolePerms)),
	)
	return nil
}

// Enforce checks explicit employee role assignments first. An employee with
// no assignment in the company is evaluated as its token role.
func (s *service) Enforce(req EnforceRequest) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.loadCompanyPolicyUnlocked(req.CompanyID); err != nil {
		return false, err
	}

	subject := req.EmployeeID
	roles := s.enforcer.GetRolesForUserInDomain(req.EmployeeID, req.CompanyID)
	if len(roles) == 0 && req.Role != "" {
		subject = normalizeRole(req.Role)
	}

	allowed, err := s.enforcer.Enforce(subject, req.CompanyID, req.Resource, req.Action)
	if err != nil {
		return false, err
	}

	s.logger.Debug("enforce result",
		zap.String("employee_id", req.EmployeeID),
		zap.String("company_id", req.CompanyID),
		zap.String("subject", subject),
		zap.String("resource", req.Resource),
		zap.String("action", req.Action),
		zap.Bool("allowed", allowed),
	)
	return allowed, nil
}

func normalizeRole(role string) string {
	return strings.ToUpper(strings.TrimSpace(role))
}
