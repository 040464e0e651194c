package main

import (
	"microsite-shop/internal/model"
	"microsite-shop/internal/service"
)

type catalogItem struct {
	Name        string
	Price       int64
	Category    string
	Image       string
	Description string
	Stock       int
	Type        model.ProductType
	FileURL     string
}

const unsplash = "https://images.unsplash.com/"

var catalog = []catalogItem{
	// Physical
	{
		Name:        "Minimal Ceramic Vase",
		Price:       89,
		Category:    "Home Decor",
		Image:       unsplash + "photo-1616075114704-df820a45050f?q=80&w=1974&auto=format&fit=crop",
		Description: "A beautiful, handcrafted ceramic vase perfect for any modern home.",
		Stock:       15,
		Type:        model.ProductPhysical,
	},
	{
		Name:        "Organic Cotton Tote Bag",
		Price:       45,
		Category:    "Accessories",
		Image:       unsplash + "photo-1591564536733-4f938d212260?q=80&w=1964&auto=format&fit=crop",
		Description: "Durable and stylish tote bag made from 100% organic cotton.",
		Stock:       50,
		Type:        model.ProductPhysical,
	},
	{
		Name:        "Brass Desk Lamp",
		Price:       159,
		Category:    "Lighting",
		Image:       unsplash + "photo-1542861219-c6bb16790b07?q=80&w=2070&auto=format&fit=crop",
		Description: "Elegant brass lamp that adds a touch of sophistication to your workspace.",
		Stock:       5,
		Type:        model.ProductPhysical,
	},
	{
		Name:        "Minimalist Leather Wallet",
		Price:       75,
		Category:    "Accessories",
		Image:       unsplash + "photo-1558913962-e64e59174154?q=80&w=1974&auto=format&fit=crop",
		Description: "Slim and functional wallet made from genuine leather.",
		Stock:       20,
		Type:        model.ProductPhysical,
	},
	{
		Name:        "Handmade Ceramic Mug",
		Price:       32,
		Category:    "Kitchenware",
		Image:       unsplash + "photo-1596728073842-8321487216a6?q=80&w=1974&auto=format&fit=crop",
		Description: "Unique ceramic mug, perfect for your morning coffee or tea.",
		Stock:       30,
		Type:        model.ProductPhysical,
	},
	{
		Name:        "Scented Soy Candle",
		Price:       28,
		Category:    "Home Fragrance",
		Image:       unsplash + "photo-1627916599184-e91bf8858348?q=80&w=1974&auto=format&fit=crop",
		Description: "Natural soy wax candle with calming lavender scent.",
		Stock:       40,
		Type:        model.ProductPhysical,
	},

	// Digital
	{
		Name:        "Minimalist Icon Pack",
		Price:       15,
		Category:    "Digital Assets",
		Image:       unsplash + "photo-1510525000782-b36e399c27b0?q=80&w=1974&auto=format&fit=crop",
		Description: "A collection of 100+ minimalist icons for your next project. (Instant Download)",
		Stock:       999,
		Type:        model.ProductDigital,
		FileURL:     "https://example.com/download/icons.zip",
	},
	{
		Name:        "Monthly Planner PDF",
		Price:       9,
		Category:    "Digital Productivity",
		Image:       unsplash + "photo-1522046907572-ec104d509f6e?q=80&w=1974&auto=format&fit=crop",
		Description: "Printable monthly planner to keep you organized. (PDF Format)",
		Stock:       999,
		Type:        model.ProductDigital,
		FileURL:     "https://example.com/download/planner.pdf",
	},
	{
		Name:        "Abstract Wall Art (4K)",
		Price:       25,
		Category:    "Digital Art",
		Image:       unsplash + "photo-1581403341630-a6e0c38f5f6b?q=80&w=1974&auto=format&fit=crop",
		Description: "High-resolution abstract digital art for printing or wallpaper.",
		Stock:       999,
		Type:        model.ProductDigital,
		FileURL:     "https://example.com/download/art.jpg",
	},
	{
		Name:        "Music Production Sample Pack",
		Price:       49,
		Category:    "Digital Audio",
		Image:       unsplash + "photo-1544723795-3fb6469e3775?q=80&w=1974&auto=format&fit=crop",
		Description: "High-quality samples and loops for music producers.",
		Stock:       999,
		Type:        model.ProductDigital,
		FileURL:     "https://example.com/download/samples.zip",
	},
}

func strPtr(s string) *string { return &s }

// demoSettings is applied on top of the defaults after a reset.
var demoSettings = service.SettingRequest{
	StoreName:        strPtr("My Awesome Shop"),
	StoreDescription: strPtr("The best place to buy amazing products, both physical and digital."),
	LogoURL:          strPtr(unsplash + "photo-1627883921381-80ae601b045f?q=80&w=1974&auto=format&fit=crop"),
	BannerURL:        strPtr(unsplash + "photo-1522204523234-8729aa67e16d?q=80&w=2070&auto=format&fit=crop"),
	Whatsapp:         strPtr("628123456789"),
	Instagram:        strPtr("https://instagram.com/micrositeshop"),
	Facebook:         strPtr("https://facebook.com/micrositeshop"),
	Twitter:          strPtr("https://twitter.com/micrositeshop"),
	Tiktok:           strPtr("https://tiktok.com/@micrositeshop"),
	SupportEmail:     strPtr("support@micrositeshop.com"),
}
