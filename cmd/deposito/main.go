package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/deposito-core/internal/application/auth"
	"github.com/jhoicas/deposito-core/internal/application/dto"
	"github.com/jhoicas/deposito-core/internal/application/inventory"
	"github.com/jhoicas/deposito-core/internal/application/registry"
	"github.com/jhoicas/deposito-core/internal/application/usecase"
	"github.com/jhoicas/deposito-core/internal/infrastructure/sqlite"
	"github.com/jhoicas/deposito-core/pkg/config"
	"github.com/jhoicas/deposito-core/pkg/hasher"
	"github.com/jhoicas/deposito-core/pkg/logger"
)

// app agrupa los casos de uso cableados del núcleo.
type app struct {
	cfg         *config.Config
	log         *logger.Logger
	provisioner *sqlite.Provisioner
	registryUC  *registry.RegistryUseCase
	authUC      *auth.AuthUseCase
	userUC      *usecase.UserUseCase
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	companyRepo, err := sqlite.NewDirectoryRepository(cfg.Storage.DirectoryPath())
	if err != nil {
		log.Fatal().Err(err).Msg("abrir catálogo de empresas")
	}

	secrets := hasher.ForScheme(cfg.Hash.Scheme, cfg.Hash.Salt)
	provisioner := sqlite.NewProvisioner(cfg.Storage.StoresPath(), log)

	registryUC := registry.NewRegistryUseCase(companyRepo, provisioner, secrets, log)
	authUC := auth.NewAuthUseCase(companyRepo, provisioner, secrets, auth.JWTConfig{
		Secret:     cfg.Session.Secret,
		ExpMinutes: cfg.Session.Expiration,
		Issuer:     cfg.Session.Issuer,
	}, log)
	userUC := usecase.NewUserUseCase(companyRepo, provisioner.UserRepository, secrets, log)

	a := &app{
		cfg:         cfg,
		log:         log,
		provisioner: provisioner,
		registryUC:  registryUC,
		authUC:      authUC,
		userUC:      userUC,
	}

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	if err := a.run(os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(command string, args []string) error {
	switch command {
	case "register":
		return a.register(args)
	case "companies":
		return a.companies(args)
	case "login":
		return a.login(args)
	case "lowstock":
		return a.lowStock(args)
	default:
		usage()
		return fmt.Errorf("comando desconocido: %s", command)
	}
}

// register da de alta una empresa con su almacén y CEO sembrado.
func (a *app) register(args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "nombre público de la empresa")
	secret := fs.String("secret", "", "secreto compartido de la empresa")
	admin := fs.String("admin", "", "login del administrador")
	adminSecret := fs.String("admin-secret", "", "secreto del administrador")
	logo := fs.String("logo", "", "ruta del logo (opcional)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	company, err := a.registryUC.Register(dto.RegisterCompanyRequest{
		Name:        *name,
		Secret:      *secret,
		AdminUser:   *admin,
		AdminSecret: *adminSecret,
		LogoPath:    *logo,
	})
	if err != nil {
		return err
	}
	fmt.Printf("empresa %q registrada, almacén %s\n", company.Name, company.StoreHandle)
	return nil
}

// companies lista nombres registrados, con filtro por prefijo opcional.
func (a *app) companies(args []string) error {
	fs := flag.NewFlagSet("companies", flag.ExitOnError)
	prefix := fs.String("prefix", "", "prefijo a filtrar (insensible a mayúsculas)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	names, err := a.registryUC.ListNamesPrefixed(*prefix)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Println(name)
	}
	return nil
}

// login autentica y muestra la sesión resultante.
func (a *app) login(args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	company := fs.String("company", "", "nombre de la empresa")
	identifier := fs.String("user", "", "login, nombre completo o email")
	secret := fs.String("secret", "", "secreto del usuario")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.authUC.Authenticate(*company, *identifier, *secret)
	if err != nil {
		return err
	}
	fmt.Printf("sesión iniciada: %s @ %s (%s)\n", session.LoginName, session.CompanyName, session.Role)
	fmt.Println("token:", session.Token)
	return nil
}

// lowstock lista los productos bajo mínimo del almacén de una empresa.
func (a *app) lowStock(args []string) error {
	fs := flag.NewFlagSet("lowstock", flag.ExitOnError)
	company := fs.String("company", "", "nombre de la empresa")
	identifier := fs.String("user", "", "login, nombre completo o email")
	secret := fs.String("secret", "", "secreto del usuario")
	if err := fs.Parse(args); err != nil {
		return err
	}

	session, err := a.authUC.Authenticate(*company, *identifier, *secret)
	if err != nil {
		return err
	}
	store := a.provisioner.StoreFor(session.StoreHandle)
	movementUC := inventory.NewRegisterMovementUseCase(
		sqlite.NewTxRunner(store),
		sqlite.NewProductRepository(store),
		sqlite.NewStockMovementRepository(store),
	)
	products, err := movementUC.LowStock(context.Background())
	if err != nil {
		return err
	}
	for _, p := range products {
		fmt.Printf("%s\t%s\t%d/%d\n", p.SKU, p.Name, p.Quantity, p.MinQuantity)
	}
	return nil
}

func usage() {
	fmt.Fprintln(os.Stderr, strings.TrimSpace(`
uso: deposito <comando> [flags]

comandos:
  register   registra una empresa y aprovisiona su almacén
  companies  lista nombres de empresas (con -prefix filtra)
  login      autentica un usuario y muestra la sesión
  lowstock   lista productos bajo mínimo
`))
}
