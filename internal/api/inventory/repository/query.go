package inventoryRepository

const (
	queryCreateItem = `
		INSERT INTO items (
			id, name, quantity, unit_of_measure_id, par, reorder_point,
			stock_check_frequency, description, lead_time, brands, notes,
			current_cost, created_at, updated_at
		) VALUES (
			:id, :name, :quantity, :unit_of_measure_id, :par, :reorder_point,
			:stock_check_frequency, :description, :lead_time, :brands, :notes,
			:current_cost, :created_at, :updated_at
		)
	`

	queryGetItemByID = `
		SELECT
			id, name, quantity, unit_of_measure_id, par, reorder_point,
			stock_check_frequency, description, lead_time, brands, notes,
			current_cost, created_at, updated_at
		FROM items
		WHERE id = :id
	`

	queryGetItemByName = `
		SELECT
			id, name, quantity, unit_of_measure_id, par, reorder_point,
			stock_check_frequency, description, lead_time, brands, notes,
			current_cost, created_at, updated_at
		FROM items
		WHERE LOWER(name) = LOWER(:name)
	`

	queryGetAllItems = `
		SELECT
			id, name, quantity, unit_of_measure_id, par, reorder_point,
			stock_check_frequency, description, lead_time, brands, notes,
			current_cost, created_at, updated_at
		FROM items
		ORDER BY name
	`

	queryUpdateItem = `
		UPDATE items
		SET
			name = :name,
			quantity = :quantity,
			unit_of_measure_id = :unit_of_measure_id,
			par = :par,
			reorder_point = :reorder_point,
			stock_check_frequency = :stock_check_frequency,
			description = :description,
			lead_time = :lead_time,
			brands = :brands,
			notes = :notes,
			current_cost = :current_cost,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryUpdateItemQuantity = `
		UPDATE items
		SET
			quantity = :quantity,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteItem = `
		DELETE FROM items
		WHERE id = :id
	`

	queryCreateUnitOfMeasure = `
		INSERT INTO units_of_measure (
			id, name, abbreviation, created_at, updated_at
		) VALUES (
			:id, :name, :abbreviation, :created_at, :updated_at
		)
	`

	queryGetUnitOfMeasureByID = `
		SELECT id, name, abbreviation, created_at, updated_at
		FROM units_of_measure
		WHERE id = :id
	`

	queryGetAllUnitsOfMeasure = `
		SELECT id, name, abbreviation, created_at, updated_at
		FROM units_of_measure
		ORDER BY name
	`

	queryCreateVendor = `
		INSERT INTO vendors (
			id, name, point_of_contact, website, notes, address,
			phone, email, created_at, updated_at
		) VALUES (
			:id, :name, :point_of_contact, :website, :notes, :address,
			:phone, :email, :created_at, :updated_at
		)
	`

	queryGetVendorByID = `
		SELECT
			id, name, point_of_contact, website, notes, address,
			phone, email, created_at, updated_at
		FROM vendors
		WHERE id = :id
	`

	queryGetAllVendors = `
		SELECT
			id, name, point_of_contact, website, notes, address,
			phone, email, created_at, updated_at
		FROM vendors
		ORDER BY name
	`

	queryUpdateVendor = `
		UPDATE vendors
		SET
			name = :name,
			point_of_contact = :point_of_contact,
			website = :website,
			notes = :notes,
			address = :address,
			phone = :phone,
			email = :email,
			updated_at = :updated_at
		WHERE id = :id
	`

	queryDeleteVendor = `
		DELETE FROM vendors
		WHERE id = :id
	`

	queryCreateInventoryCount = `
		INSERT INTO inventory_counts (
			id, item_id, user_id, count, counted_at, created_at
		) VALUES (
			:id, :item_id, :user_id, :count, :counted_at, :created_at
		)
	`
)
