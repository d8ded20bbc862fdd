package models

type LogoMode string

const (
	LogoText  LogoMode = "text"
	LogoImage LogoMode = "image"
)

type SliderVariant string

const (
	SliderBasicHero        SliderVariant = "BasicHeroCarousel"
	SliderFadeBanner       SliderVariant = "FadeBannerSlider"
	SliderThumbnailGallery SliderVariant = "ThumbnailGallerySlider"
)

// SliderVariants lists every slider the storefront can render.
var SliderVariants = []SliderVariant{SliderBasicHero, SliderFadeBanner, SliderThumbnailGallery}

func (v SliderVariant) Valid() bool {
	for _, known := range SliderVariants {
		if v == known {
			return true
		}
	}
	return false
}

const (
	HeaderClassic  = "ClassicHeader"
	HeaderCentered = "CenteredLogoHeader"
	HeaderMinimal  = "MinimalHeader"

	ProductListGrid     = "GridProductList"
	ProductListCarousel = "CarouselProductList"
	ProductListMasonry  = "MasonryProductList"
)

// TenantConfiguration is the full configuration document of one storefront.
// SliderImages is persisted in its own document, keyed like the configuration.
type TenantConfiguration struct {
	TenantID           string                    `json:"tenantId"`
	SiteSlug           string                    `json:"siteSlug"`
	DisplayTitle       string                    `json:"displayTitle"`
	LogoMode           LogoMode                  `json:"logoMode"`
	LogoRef            string                    `json:"logoRef"`
	HeaderVariant      string                    `json:"headerVariant"`
	SliderVariant      SliderVariant             `json:"sliderVariant"`
	ProductListVariant string                    `json:"productListVariant"`
	Categories         []Category                `json:"categories"`
	Products           []Product                 `json:"products"`
	Badges             []Badge                   `json:"badges"`
	PopupConfig        PopupConfig               `json:"popupConfig"`
	FooterConfig       FooterConfig              `json:"footerConfig"`
	AuthFieldConfig    AuthFieldConfig           `json:"authFieldConfig"`
	SliderImages       map[SliderVariant][]Slide `json:"sliderImages,omitempty"`
}

type Category struct {
	ID            string        `json:"id"`
	Name          string        `json:"name"`
	Subcategories []Subcategory `json:"subcategories"`
}

type Subcategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID              string          `json:"id"`
	Name            string          `json:"name"`
	Price           *float64        `json:"price"`
	SalePrice       *float64        `json:"salePrice,omitempty"`
	DiscountPercent *float64        `json:"discountPercent,omitempty"`
	CategoryID      string          `json:"categoryId"`
	Image           string          `json:"image"`
	SubImages       []string        `json:"subImages"`
	DetailImages    []string        `json:"detailImages"`
	Options         []ProductOption `json:"options"`
	ColorOptions    []ColorOption   `json:"colorOptions"`
	Badges          []string        `json:"badges"`
}

type ProductOption struct {
	Name   string   `json:"name"`
	Values []string `json:"values"`
}

type ColorOption struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

type Badge struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Color     string `json:"color"`
	IsDefault bool   `json:"isDefault"`
}

type Slide struct {
	ID         string `json:"id"`
	Img        string `json:"img"`
	Alt        string `json:"alt"`
	NavText    string `json:"navText,omitempty"`
	Link       string `json:"link,omitempty"`
	CategoryID string `json:"categoryId,omitempty"`
}

type PopupConfig struct {
	Enabled    bool   `json:"enabled"`
	Image      string `json:"image"`
	Link       string `json:"link"`
	HideForDay bool   `json:"hideForDay"`
}

type FooterConfig struct {
	Variant      string `json:"variant"`
	CompanyName  string `json:"companyName"`
	Address      string `json:"address"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	BusinessNo   string `json:"businessNo"`
	ShowSNSLinks bool   `json:"showSnsLinks"`
}

type AuthFieldConfig struct {
	RequirePhone    bool `json:"requirePhone"`
	RequireAddress  bool `json:"requireAddress"`
	RequireBirthday bool `json:"requireBirthday"`
}
