package extractor

// PlatformUnknown is reported when no fingerprint marker matches.
const PlatformUnknown = "unknown/custom"

// Platform fingerprint markers, checked against the lowercased markup in
// order. First match wins; a page never gets two platform labels.
var platformMarkers = []struct {
	Marker string
	Name   string
}{
	{"cdn.shopify.com", "Shopify"},
	{"myshopify.com", "Shopify"},
	{"tiendanube", "Tiendanube"},
	{"woocommerce", "WooCommerce"},
	{"wp-content", "WordPress"},
	{"wixstatic.com", "Wix"},
	{"parastorage.com", "Wix"},
	{"squarespace", "Squarespace"},
	{"bigcommerce", "BigCommerce"},
	{"prestashop", "PrestaShop"},
	{"vtex", "VTEX"},
	{"magento", "Magento"},
	{"webflow", "Webflow"},
}

// TrustCategory identifies one policy/support page kind.
type TrustCategory string

const (
	TrustContact  TrustCategory = "contact"
	TrustShipping TrustCategory = "shipping"
	TrustReturns  TrustCategory = "returns"
	TrustPrivacy  TrustCategory = "privacy"
	TrustTerms    TrustCategory = "terms"
	TrustFAQ      TrustCategory = "faq"
)

// TrustCategories fixes the evaluation and reporting order.
var TrustCategories = []TrustCategory{
	TrustContact,
	TrustShipping,
	TrustReturns,
	TrustPrivacy,
	TrustTerms,
	TrustFAQ,
}

// Keyword lists per trust category, Spanish plus English equivalents.
// Matched against anchor hrefs and labels, with a lenient whole-page
// text fallback. New locales are additive rows, not new branches.
var trustKeywords = map[TrustCategory][]string{
	TrustContact:  {"contact", "contacto", "contactanos", "contáctanos", "atencion al cliente", "atención al cliente"},
	TrustShipping: {"shipping", "envio", "envío", "envios", "envíos", "delivery", "entregas", "como comprar", "cómo comprar"},
	TrustReturns:  {"return", "refund", "devolucion", "devolución", "devoluciones", "cambios y devoluciones", "reembolso"},
	TrustPrivacy:  {"privacy", "privacidad", "datos personales", "proteccion de datos", "protección de datos"},
	TrustTerms:    {"terms", "terminos", "términos", "condiciones", "tyc", "legales"},
	TrustFAQ:      {"faq", "preguntas frecuentes", "preguntas", "ayuda", "help center"},
}

// Call-to-action phrasing scanned over anchor and button text.
var ctaPhrases = []string{
	"comprar",
	"agregar al carrito",
	"añadir al carrito",
	"buy now",
	"add to cart",
	"shop now",
	"suscrib",
	"subscribe",
	"sign up",
	"registrate",
	"regístrate",
	"get started",
	"comenzar",
	"empezar",
	"cotizar",
	"reservar",
	"solicitar",
	"contactar",
}

// Known analytics and tracking script markers.
var trackerMarkers = []struct {
	Marker string
	Vendor string
}{
	{"googletagmanager.com", "Google Tag Manager"},
	{"google-analytics.com", "Google Analytics"},
	{"gtag(", "Google Analytics"},
	{"connect.facebook.net", "Meta Pixel"},
	{"fbq(", "Meta Pixel"},
	{"static.hotjar.com", "Hotjar"},
	{"clarity.ms", "Microsoft Clarity"},
	{"analytics.tiktok.com", "TikTok Pixel"},
	{"snap.licdn.com", "LinkedIn Insight"},
}

// Service-worker registration markers for the PWA check.
var serviceWorkerMarkers = []string{
	"navigator.serviceworker",
	"serviceworker.register",
	"service-worker.js",
	"sw.js",
}

const maxStructuredDataTypes = 10
