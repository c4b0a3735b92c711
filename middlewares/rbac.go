package middlewares

import (
	"fmt"
	"log"
	"net/http"

	"approvehub/config"

	"github.com/casbin/casbin/v2"
	"github.com/casbin/casbin/v2/model"
	mongodbadapter "github.com/casbin/mongodb-adapter/v3"
	"github.com/gin-gonic/gin"
)

var enforcer *casbin.Enforcer

const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = g(r.sub, p.sub) && r.obj == p.obj && r.act == p.act
`

// InitCasbin initializes the Casbin enforcer with a MongoDB-backed policy
// store and makes sure the admin policies for the approval workflow exist.
func InitCasbin(cfg *config.Config) error {
	adapter, err := mongodbadapter.NewAdapter(cfg.Database.URI)
	if err != nil {
		return fmt.Errorf("failed to create Casbin adapter: %w", err)
	}

	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return fmt.Errorf("failed to create Casbin model: %w", err)
	}

	enforcer, err = casbin.NewEnforcer(m, adapter)
	if err != nil {
		return fmt.Errorf("failed to create Casbin enforcer: %w", err)
	}
	if err := enforcer.LoadPolicy(); err != nil {
		return fmt.Errorf("failed to load policy: %w", err)
	}

	ensureDefaultPolicies()
	log.Println("Casbin RBAC initialized")
	return nil
}

// ensureDefaultPolicies adds the admin policies if missing (idempotent).
func ensureDefaultPolicies() {
	defaultPolicies := [][]string{
		{"admin", "user", "verify"},
		{"admin", "user", "assign"},
		{"admin", "user", "delete"},
		{"admin", "user", "restore"},
		{"admin", "deadline", "write"},
	}
	for _, p := range defaultPolicies {
		exists, _ := enforcer.HasPolicy(p[0], p[1], p[2])
		if !exists {
			enforcer.AddPolicy(p[0], p[1], p[2])
		}
	}
	if err := enforcer.SavePolicy(); err != nil {
		log.Printf("Warning: failed to save policies: %v", err)
	}
}

// RBACMiddleware checks whether the caller's role may perform the action on
// the resource. Runs after AuthMiddleware has set userRole.
func RBACMiddleware(resource, action string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := c.GetString("userRole")
		if role == "" {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found"})
			c.Abort()
			return
		}

		allowed, err := enforcer.Enforce(role, resource, action)
		if err != nil {
			log.Printf("Casbin enforce error: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Permission check failed"})
			c.Abort()
			return
		}
		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}
		c.Next()
	}
}
