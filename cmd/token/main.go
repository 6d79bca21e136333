// token emite un JWT firmado con JWT_SECRET para probar la API en local.
//
// Uso: go run ./cmd/token --user analista-1 --role analyst [--exp 120]
package main

import (
	"fmt"
	"os"

	"github.com/spf13/pflag"

	"github.com/jhoicas/Costeo-api/pkg/config"
	"github.com/jhoicas/Costeo-api/pkg/jwt"
)

func main() {
	user := pflag.StringP("user", "u", "local", "user_id del token")
	role := pflag.StringP("role", "r", jwt.RoleAnalyst, "rol: admin, analyst o viewer")
	exp := pflag.Int("exp", 0, "expiración en minutos (0 = JWT_EXPIRATION_MINUTES)")
	pflag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	switch *role {
	case jwt.RoleAdmin, jwt.RoleAnalyst, jwt.RoleViewer:
	default:
		fmt.Fprintf(os.Stderr, "Rol desconocido: %s\n", *role)
		os.Exit(1)
	}
	minutes := cfg.JWT.Expiration
	if *exp > 0 {
		minutes = *exp
	}
	tok, err := jwt.Generate(cfg.JWT.Secret, *user, *role, cfg.JWT.Issuer, minutes)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Generar token: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(tok)
}
