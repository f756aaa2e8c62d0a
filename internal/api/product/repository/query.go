package productRepository

const (
	queryListProducts = `
		SELECT id, name, description, price, category, image_url, is_best_seller, stock, created_at
		FROM products
		WHERE (:category = '' OR category = :category)
		  AND (:best_seller = FALSE OR is_best_seller = TRUE)
		ORDER BY created_at DESC
	`

	queryGetProductByID = `
		SELECT id, name, description, price, category, image_url, is_best_seller, stock, created_at
		FROM products
		WHERE id = :id
	`

	queryUpdateProductImage = `
		UPDATE products
		SET image_url = :image_url
		WHERE id = :id
	`

	queryListActiveBanners = `
		SELECT id, image_url, title, order_index, is_active, created_at
		FROM banners
		WHERE is_active = TRUE
		ORDER BY order_index ASC
	`

	queryUpdateBannerImage = `
		UPDATE banners
		SET image_url = :image_url
		WHERE id = :id
	`
)
