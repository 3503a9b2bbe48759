package routes

import (
	"net/http"

	"dukaan/cart"
	"dukaan/categories"
	"dukaan/middleware"
	"dukaan/orders"
	"dukaan/products"
	"dukaan/ratelim"

	"github.com/julienschmidt/httprouter"
)

func AddStaticRoutes(router *httprouter.Router) {
	router.ServeFiles("/static/productpic/*filepath", http.Dir("static/productpic"))
}

func AddProductRoutes(router *httprouter.Router) {
	router.GET("/api/products", products.GetAllProducts)
	router.GET("/api/products/:id", products.GetProductByID)
	router.POST("/api/products", ratelim.RateLimit(middleware.Authenticate(middleware.RequireAdmin(products.CreateProduct))))
	router.PUT("/api/products/:id", ratelim.RateLimit(middleware.Authenticate(middleware.RequireAdmin(products.UpdateProduct))))
	router.DELETE("/api/products/:id", ratelim.RateLimit(middleware.Authenticate(middleware.RequireAdmin(products.DeleteProduct))))
	router.POST("/api/products/:id/image", ratelim.RateLimit(middleware.Authenticate(middleware.RequireAdmin(products.UploadProductImage))))
}

func AddCategoryRoutes(router *httprouter.Router) {
	router.GET("/api/categories", categories.GetCategories)
	router.GET("/api/categories/:id", categories.GetCategoryByID)
	router.POST("/api/categories", ratelim.RateLimit(middleware.Authenticate(middleware.RequireAdmin(categories.CreateCategory))))
	router.PUT("/api/categories/:id", ratelim.RateLimit(middleware.Authenticate(middleware.RequireAdmin(categories.UpdateCategory))))
	router.DELETE("/api/categories/:id", ratelim.RateLimit(middleware.Authenticate(middleware.RequireAdmin(categories.DeleteCategory))))
}

func AddCartRoutes(router *httprouter.Router) {
	router.POST("/api/cart/add", ratelim.RateLimit(middleware.Authenticate(cart.AddToCart)))
	router.GET("/api/cart", middleware.Authenticate(cart.GetCart))
	router.PUT("/api/cart/update", ratelim.RateLimit(middleware.Authenticate(cart.UpdateCartItem)))
	router.DELETE("/api/cart/remove/:productId", ratelim.RateLimit(middleware.Authenticate(cart.RemoveFromCart)))
	router.DELETE("/api/cart/clear", ratelim.RateLimit(middleware.Authenticate(cart.ClearCart)))
}

func AddOrderRoutes(router *httprouter.Router) {
	router.POST("/api/orders", ratelim.RateLimit(middleware.Authenticate(orders.PlaceOrder)))
	router.GET("/api/orders", middleware.Authenticate(orders.GetUserOrders))
	router.GET("/api/orders/:id", middleware.Authenticate(orders.GetOrderByID))
}
