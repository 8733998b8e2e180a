package handlers

import (
	"embed"
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/you/turf-booking/pkg/auth"
	"github.com/you/turf-booking/services/turf-service/internal/middlewares"
	"github.com/you/turf-booking/services/turf-service/internal/realtime"
)

//go:embed templates/*.html
var templateFS embed.FS

type Deps struct {
	ServiceName  string
	Turfs        TurfService
	Bookings     BookingService
	Accounts     AuthService
	Sessions     *auth.Sessions
	Realtime     *realtime.Server
	SecureCookie bool
}

func Templates() *template.Template {
	funcs := template.FuncMap{
		"when": func(t time.Time) string { return t.UTC().Format("Mon 02 Jan 2006 15:04") },
		"hour": func(t time.Time) string { return t.UTC().Format("15:04") },
		"dict": func(kv ...any) map[string]any {
			m := make(map[string]any, len(kv)/2)
			for i := 0; i+1 < len(kv); i += 2 {
				k, _ := kv[i].(string)
				m[k] = kv[i+1]
			}
			return m
		},
	}
	return template.Must(template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html"))
}

// NewRouter mounts every route twice: at the root for browsers and under
// /api where every answer is JSON.
func NewRouter(d Deps) *gin.Engine {
	r := gin.New()
	r.SetHTMLTemplate(Templates())
	r.Use(
		gin.Recovery(),
		otelgin.Middleware(d.ServiceName),
		middlewares.RequestID(),
		middlewares.Logger(),
		middlewares.Session(d.Sessions),
	)

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if d.Realtime != nil {
		r.GET("/ws", func(c *gin.Context) {
			d.Realtime.Serve(c.Writer, c.Request, middlewares.IdentityFrom(c))
		})
	}

	mount(r.Group("/"), d)
	mount(r.Group("/api", middlewares.APIMode()), d)
	return r
}

func mount(g *gin.RouterGroup, d Deps) {
	th := NewTurfHandler(d.Turfs)
	bh := NewBookingHandler(d.Bookings, d.Turfs)
	ah := NewAuthHandler(d.Accounts, d.Sessions, d.SecureCookie)
	adm := NewAdminHandler(d.Bookings)

	g.GET("/", th.Home)
	g.GET("/turf/:id", th.Get)
	g.GET("/turf/:id/slots", th.Slots)
	g.GET("/book/:slotId", bh.Form)
	g.POST("/book/:slotId", bh.Book)

	g.GET("/login", ah.LoginPage)
	g.POST("/login", ah.Login)
	g.GET("/register", ah.RegisterPage)
	g.POST("/register", ah.Register)
	g.POST("/logout", ah.Logout)
	g.GET("/auth/me", ah.Me)

	user := g.Group("/user", middlewares.RequireAuth())
	user.GET("/dashboard", bh.Dashboard)

	admin := g.Group("/admin", middlewares.RequireAuth(), middlewares.RequireAdmin())
	admin.GET("/dashboard", adm.Dashboard)
	admin.GET("/bookings", adm.Bookings)
	admin.GET("/upcoming", adm.Upcoming)
	admin.GET("/mark-paid/:id", adm.MarkPaid)
	admin.POST("/mark-paid/:id", adm.MarkPaid)
}
