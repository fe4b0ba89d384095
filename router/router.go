package router

import (
	"net/http"
	"time"

	"crm/api"
	"crm/config"
	_ "crm/docs"
	"crm/middleware"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRouter 设置路由
func SetupRouter(cfg *config.Config) *gin.Engine {
	// 设置运行模式
	gin.SetMode(cfg.Server.Mode)

	r := gin.Default()

	// CORS 中间件
	r.Use(CORSMiddleware(cfg.Server.FrontendOrigin))

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"name":    "客户管理系统 API",
			"version": cfg.API.Version,
			"docs":    "/swagger/index.html",
		})
	})

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	})

	// Swagger 文档
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// API 路由组，版本号取自配置
	v1 := r.Group("/api/" + cfg.API.Version)
	{
		// 认证相关路由（无需登录）
		authHandler := api.NewAuthHandler(cfg)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", middleware.LoginRateLimit(10, time.Minute), authHandler.Login)
		}

		// 公开的枚举值接口（无需登录）
		expenseHandler := api.NewExpenseHandler()
		serviceHandler := api.NewServiceHandler()
		teamHandler := api.NewTeamMemberHandler()
		v1.GET("/expenses/categories", expenseHandler.GetCategories)
		v1.GET("/services/categories", serviceHandler.GetCategories)
		v1.GET("/team/departments", teamHandler.GetDepartments)

		// 需要 JWT 认证的路由
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			// 用户相关
			authorized.GET("/auth/profile", authHandler.GetProfile)
			authorized.PUT("/auth/password", authHandler.ChangePassword)

			// 客户管理
			customerHandler := api.NewCustomerHandler()
			customers := authorized.Group("/customers")
			{
				customers.POST("", customerHandler.Create)
				customers.GET("", customerHandler.List)
				customers.GET("/statistics", customerHandler.GetStatistics)
				customers.GET("/export/csv", customerHandler.ExportCSV)
				customers.GET("/:id", customerHandler.Get)
				customers.PUT("/:id", customerHandler.Update)
				customers.DELETE("/:id", customerHandler.Delete)
			}

			// 服务管理
			services := authorized.Group("/services")
			{
				services.POST("", serviceHandler.Create)
				services.GET("", serviceHandler.List)
				services.GET("/statistics", serviceHandler.GetStatistics)
				services.GET("/export/csv", serviceHandler.ExportCSV)
				services.GET("/:id", serviceHandler.Get)
				services.PUT("/:id", serviceHandler.Update)
				services.DELETE("/:id", serviceHandler.Delete)
			}

			// 交易管理
			transactionHandler := api.NewTransactionHandler()
			transactions := authorized.Group("/transactions")
			{
				transactions.POST("", transactionHandler.Create)
				transactions.GET("", transactionHandler.List)
				transactions.GET("/statistics", transactionHandler.GetStatistics)
				transactions.GET("/export/csv", transactionHandler.ExportCSV)
				transactions.GET("/:id", transactionHandler.Get)
				transactions.PUT("/:id", transactionHandler.Update)
				transactions.DELETE("/:id", transactionHandler.Delete)
			}

			// 支出管理
			expenses := authorized.Group("/expenses")
			{
				expenses.POST("", expenseHandler.Create)
				expenses.GET("", expenseHandler.List)
				expenses.GET("/statistics", expenseHandler.GetStatistics)
				expenses.GET("/export/csv", expenseHandler.ExportCSV)
				expenses.GET("/:id", expenseHandler.Get)
				expenses.PUT("/:id", expenseHandler.Update)
				expenses.DELETE("/:id", expenseHandler.Delete)
			}

			// 收据管理
			receiptHandler := api.NewReceiptHandler(cfg)
			receipts := authorized.Group("/receipts")
			{
				receipts.POST("", receiptHandler.Create)
				receipts.GET("", receiptHandler.List)
				receipts.GET("/statistics", receiptHandler.GetStatistics)
				receipts.GET("/export/csv", receiptHandler.ExportCSV)
				receipts.GET("/:id", receiptHandler.Get)
				receipts.PUT("/:id", receiptHandler.Update)
				receipts.DELETE("/:id", receiptHandler.Delete)
				receipts.POST("/:id/send", receiptHandler.Send)
			}

			// 报价单管理
			quotationHandler := api.NewQuotationHandler()
			quotations := authorized.Group("/quotations")
			{
				quotations.POST("", quotationHandler.Create)
				quotations.GET("", quotationHandler.List)
				quotations.GET("/statistics", quotationHandler.GetStatistics)
				quotations.GET("/export/csv", quotationHandler.ExportCSV)
				quotations.GET("/:id", quotationHandler.Get)
				quotations.PUT("/:id", quotationHandler.Update)
				quotations.DELETE("/:id", quotationHandler.Delete)
			}

			// 团队管理
			team := authorized.Group("/team")
			{
				team.POST("", teamHandler.Create)
				team.GET("", teamHandler.List)
				team.GET("/statistics", teamHandler.GetStatistics)
				team.GET("/export/csv", teamHandler.ExportCSV)
				team.GET("/:id", teamHandler.Get)
				team.PUT("/:id", teamHandler.Update)
				team.DELETE("/:id", teamHandler.Delete)
			}

			// 全量导出
			exportHandler := api.NewExportHandler()
			authorized.GET("/export/excel", exportHandler.ExportExcel)

			// 数据看板
			dashboardHandler := api.NewDashboardHandler()
			authorized.GET("/dashboard/statistics", dashboardHandler.GetStatistics)
		}
	}

	return r
}

// CORSMiddleware CORS 跨域中间件
// origin 为空时放开所有来源
func CORSMiddleware(origin string) gin.HandlerFunc {
	if origin == "" {
		origin = "*"
	}
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	}
}
