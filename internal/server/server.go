// Package server is the reference REST backend the admin panel talks to.
package server

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/jask/adminpanel/internal/api"
	"github.com/jask/adminpanel/internal/database/repository"
)

type handler struct {
	clients  *repository.ClientRepo
	products *repository.ProductRepo
	orders   *repository.OrderRepo
	log      *slog.Logger
}

type clientBody struct {
	Name  string `json:"nom" binding:"required"`
	Email string `json:"email" binding:"required,email"`
	City  string `json:"ville" binding:"required"`
}

type productBody struct {
	Name  string   `json:"nom" binding:"required"`
	Price *float64 `json:"prix" binding:"required,gte=0"`
	Stock *int     `json:"stock" binding:"required,gte=0"`
}

type orderBody struct {
	ClientID  int64 `json:"id_client" binding:"required,gt=0"`
	ProductID int64 `json:"id_produit" binding:"required,gt=0"`
	Quantity  int   `json:"quantite" binding:"required,gte=1"`
}

// New builds the router over an already migrated database.
func New(db *sql.DB, log *slog.Logger) *gin.Engine {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	h := &handler{
		clients:  repository.NewClientRepo(db),
		products: repository.NewProductRepo(db),
		orders:   repository.NewOrderRepo(db),
		log:      log,
	}

	r := gin.New()
	r.Use(requestID(), recovery(log), accessLog(log), cors())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Backend RUN"})
	})

	clients := r.Group(api.ResourceClients.Path())
	clients.GET("", h.listClients)
	clients.POST("", h.createClient)
	clients.GET("/:id", h.getClient)
	clients.PUT("/:id", h.updateClient)
	clients.DELETE("/:id", h.deleteClient)

	products := r.Group(api.ResourceProducts.Path())
	products.GET("", h.listProducts)
	products.POST("", h.createProduct)
	products.GET("/:id", h.getProduct)
	products.PUT("/:id", h.updateProduct)
	products.DELETE("/:id", h.deleteProduct)

	orders := r.Group(api.ResourceOrders.Path())
	orders.GET("", h.listOrders)
	orders.POST("", h.createOrder)
	orders.GET("/:id", h.getOrder)

	return r
}

func (h *handler) listClients(c *gin.Context) {
	rows, err := h.clients.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}
	out := make([]api.Client, 0, len(rows))
	for _, row := range rows {
		out = append(out, clientJSON(row))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) createClient(c *gin.Context) {
	var body clientBody
	if !bind(c, &body) {
		return
	}
	row, err := h.clients.Create(c.Request.Context(), repository.Client{Name: body.Name, Email: body.Email, City: body.City})
	if err != nil {
		h.fail(c, err, "")
		return
	}
	h.log.Info("client created", "id", row.ID, "request_id", requestIDFrom(c))
	c.JSON(http.StatusCreated, clientJSON(row))
}

func (h *handler) getClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	row, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Client not found")
		return
	}
	c.JSON(http.StatusOK, clientJSON(row))
}

func (h *handler) updateClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body clientBody
	if !bind(c, &body) {
		return
	}
	row := repository.Client{ID: id, Name: body.Name, Email: body.Email, City: body.City}
	if err := h.clients.Update(c.Request.Context(), row); err != nil {
		h.fail(c, err, "Client not found")
		return
	}
	c.JSON(http.StatusOK, clientJSON(row))
}

func (h *handler) deleteClient(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Client not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Client deleted"})
}

func (h *handler) listProducts(c *gin.Context) {
	rows, err := h.products.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}
	out := make([]api.Product, 0, len(rows))
	for _, row := range rows {
		out = append(out, productJSON(row))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) createProduct(c *gin.Context) {
	var body productBody
	if !bind(c, &body) {
		return
	}
	row, err := h.products.Create(c.Request.Context(), repository.Product{Name: body.Name, Price: *body.Price, Stock: *body.Stock})
	if err != nil {
		h.fail(c, err, "")
		return
	}
	h.log.Info("product created", "id", row.ID, "request_id", requestIDFrom(c))
	c.JSON(http.StatusCreated, productJSON(row))
}

func (h *handler) getProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	row, err := h.products.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, productJSON(row))
}

func (h *handler) updateProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	var body productBody
	if !bind(c, &body) {
		return
	}
	row := repository.Product{ID: id, Name: body.Name, Price: *body.Price, Stock: *body.Stock}
	if err := h.products.Update(c.Request.Context(), row); err != nil {
		h.fail(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, productJSON(row))
}

func (h *handler) deleteProduct(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	if err := h.products.Delete(c.Request.Context(), id); err != nil {
		h.fail(c, err, "Product not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted"})
}

func (h *handler) listOrders(c *gin.Context) {
	rows, err := h.orders.List(c.Request.Context())
	if err != nil {
		h.fail(c, err, "")
		return
	}
	out := make([]api.Order, 0, len(rows))
	for _, row := range rows {
		out = append(out, orderJSON(row))
	}
	c.JSON(http.StatusOK, out)
}

func (h *handler) createOrder(c *gin.Context) {
	var body orderBody
	if !bind(c, &body) {
		return
	}
	row, err := h.orders.Create(c.Request.Context(), repository.Order{ClientID: body.ClientID, ProductID: body.ProductID, Quantity: body.Quantity})
	if err != nil {
		var ref *repository.RefError
		if errors.As(err, &ref) {
			detail := "Product not found"
			if ref.Table == "clients" {
				detail = "Client not found"
			}
			h.fail(c, err, detail)
			return
		}
		h.fail(c, err, "")
		return
	}
	h.log.Info("order created", "id", row.ID, "client", row.ClientID, "product", row.ProductID, "request_id", requestIDFrom(c))
	c.JSON(http.StatusCreated, orderJSON(row))
}

func (h *handler) getOrder(c *gin.Context) {
	id, ok := pathID(c)
	if !ok {
		return
	}
	row, err := h.orders.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err, "Order not found")
		return
	}
	c.JSON(http.StatusOK, orderJSON(row))
}

// fail maps repository errors onto status codes. notFound is the detail sent
// for ErrNotFound.
func (h *handler) fail(c *gin.Context, err error, notFound string) {
	_ = c.Error(err)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"detail": notFound})
	case errors.Is(err, repository.ErrInUse):
		c.JSON(http.StatusConflict, gin.H{"detail": "Still referenced by orders"})
	default:
		h.log.Error("storage error", "err", err, "path", c.FullPath(), "request_id", requestIDFrom(c))
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		_ = c.Error(err)
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return false
	}
	return true
}

func pathID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "invalid id"})
		return 0, false
	}
	return id, true
}

func clientJSON(r repository.Client) api.Client {
	return api.Client{ID: r.ID, Name: r.Name, Email: r.Email, City: r.City}
}

func productJSON(r repository.Product) api.Product {
	return api.Product{ID: r.ID, Name: r.Name, Price: r.Price, Stock: r.Stock}
}

func orderJSON(r repository.Order) api.Order {
	return api.Order{ID: r.ID, ClientID: r.ClientID, ProductID: r.ProductID, Quantity: r.Quantity}
}
