package routes

import (
	"time"

	"bankdesk/internal/adapters/http/handlers"
	"bankdesk/internal/adapters/http/middleware"
	"bankdesk/internal/adapters/persistence/repositories"
	"bankdesk/internal/config"
	"bankdesk/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	customerRepo := repositories.NewCustomerRepository(db)
	branchRepo := repositories.NewBranchRepository(db)
	accountRepo := repositories.NewAccountRepository(db)
	employeeRepo := repositories.NewEmployeeRepository(db)
	cardRepo := repositories.NewCardRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	loanEMIRepo := repositories.NewLoanEMIRepository(db)
	transactionRepo := repositories.NewTransactionRepository(db)
	ledgerStore := repositories.NewLedgerStore(db)

	// Initialize services
	authService := services.NewAuthService(customerRepo, employeeRepo, cfg)
	transferService := services.NewTransferService(ledgerStore)
	customerService := services.NewCustomerService(customerRepo, accountRepo, loanRepo, cardRepo, transactionRepo)
	employeeService := services.NewEmployeeService(customerRepo, accountRepo, loanRepo, cardRepo, employeeRepo, branchRepo, transferService)
	loanService := services.NewLoanService(loanRepo, loanEMIRepo, accountRepo, ledgerStore, transferService)
	cardService := services.NewCardService(cardRepo, accountRepo)
	reportService := services.NewReportService(db, transactionRepo, customerRepo)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg)
	customerHandler := handlers.NewCustomerHandler(customerService, transferService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService, reportService, transferService)
	loanHandler := handlers.NewLoanHandler(loanService)
	cardHandler := handlers.NewCardHandler(cardService)

	// ============================================================
	// Public routes
	// ============================================================
	app.Get("/", healthHandler.Root)
	app.Get("/health", healthHandler.HealthCheck)

	api := app.Group("/api/v1")

	// Auth (rate limited)
	auth := api.Group("/auth", middleware.AuthRateLimiter())
	auth.Post("/customer/login", authHandler.CustomerLogin)
	auth.Post("/employee/login", authHandler.EmployeeLogin)
	auth.Post("/logout", authHandler.Logout)

	// ============================================================
	// Customer routes
	// ============================================================
	customer := api.Group("/customer", middleware.AuthMiddleware(cfg), middleware.CustomerOnly())

	customer.Get("/dashboard", middleware.NoCacheHeaders(), customerHandler.Dashboard)
	customer.Get("/profile", middleware.PrivateCacheHeaders(5*time.Minute), customerHandler.Profile)
	customer.Get("/accounts", middleware.NoCacheHeaders(), customerHandler.Accounts)
	customer.Get("/accounts/:id/transactions", middleware.NoCacheHeaders(), customerHandler.TransactionHistory)
	customer.Get("/accounts/:id/statement", middleware.NoCacheHeaders(), customerHandler.Statement)
	customer.Post("/transfer", middleware.TransferRateLimiter(), customerHandler.Transfer)

	customer.Post("/loans", loanHandler.Request)
	customer.Get("/loans", loanHandler.MyLoans)
	customer.Get("/loans/:id/schedule", loanHandler.EMISchedule)
	customer.Get("/cards", cardHandler.MyCards)

	// ============================================================
	// Employee routes
	// ============================================================
	employee := api.Group("/employee", middleware.AuthMiddleware(cfg), middleware.EmployeeOnly())

	employee.Get("/dashboard", middleware.NoCacheHeaders(), employeeHandler.Dashboard)
	employee.Get("/customers/search", employeeHandler.SearchCustomers)
	employee.Get("/customers/:id", employeeHandler.CustomerDetails)
	employee.Post("/customers", employeeHandler.CreateCustomer)
	employee.Post("/accounts", employeeHandler.OpenAccount)
	employee.Post("/deposit", middleware.TransferRateLimiter(), employeeHandler.Deposit)
	employee.Post("/withdraw", middleware.TransferRateLimiter(), employeeHandler.Withdraw)

	employee.Get("/loans/pending", loanHandler.Pending)
	employee.Get("/loans", loanHandler.BranchLoans)
	employee.Get("/loans/:id/schedule", loanHandler.EMISchedule)
	employee.Post("/loans/:id/approve", loanHandler.Approve)
	employee.Post("/loans/:id/reject", loanHandler.Reject)

	employee.Post("/cards", cardHandler.Issue)
	employee.Get("/cards", cardHandler.BranchCards)
	employee.Post("/cards/:id/block", cardHandler.Block)

	employee.Get("/report", middleware.NoCacheHeaders(), employeeHandler.BranchReport)
	employee.Get("/transactions", middleware.NoCacheHeaders(), employeeHandler.BranchTransactions)
	employee.Get("/staff", employeeHandler.BranchEmployees)
	employee.Get("/branches", middleware.ReferenceDataCache(), employeeHandler.Branches)
}
