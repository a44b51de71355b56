package extractor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const storefrontPage = `<!DOCTYPE html>
<html lang="es">
<head>
	<title>Tienda Aurora - Ropa artesanal hecha en Buenos Aires</title>
	<meta name="description" content="Ropa artesanal de algodón orgánico. Envíos a todo el país, cambios sin cargo dentro de los 30 días y atención personalizada.">
	<meta name="robots" content="index, follow">
	<meta property="og:title" content="Tienda Aurora">
	<meta property="og:description" content="Ropa artesanal de algodón orgánico">
	<meta property="og:image" content="https://tienda-aurora.example/og.jpg">
	<link rel="canonical" href="https://tienda-aurora.example/">
	<link rel="manifest" href="/manifest.json">
	<script src="https://cdn.shopify.com/s/files/theme.js"></script>
	<script src="https://www.googletagmanager.com/gtm.js?id=GTM-XXXX"></script>
	<script type="application/ld+json">
	{"@context":"https://schema.org","@type":"Product","name":"Remera","offers":{"@type":"Offer","price":"100"}}
	</script>
	<script type="application/ld+json">
	{not valid json at all
	</script>
	<script type="application/ld+json">
	[{"@type":["Organization","LocalBusiness"]},{"@type":"Product"}]
	</script>
	<script>
	if ('serviceWorker' in navigator) { navigator.serviceWorker.register('/sw.js'); }
	</script>
</head>
<body>
	<h1>Bienvenidos a Tienda Aurora</h1>
	<nav>
		<a href="/contacto">Contacto</a>
		<a href="/politicas/envios">Envíos</a>
		<a href="/politicas/devoluciones">Cambios y devoluciones</a>
		<a href="/privacidad">Política de privacidad</a>
		<a href="/terminos">Términos y condiciones</a>
		<a href="/preguntas-frecuentes">Preguntas frecuentes</a>
	</nav>
	<main>
		<a class="btn" href="/productos">Comprar ahora</a>
	</main>
</body>
</html>`

func TestExtractStorefront(t *testing.T) {
	f := New().Extract(storefrontPage)

	assert.Equal(t, "Shopify", f.Platform)

	assert.Equal(t, "Tienda Aurora - Ropa artesanal hecha en Buenos Aires", f.SEO.Title)
	assert.Contains(t, f.SEO.MetaDesc, "algodón orgánico")
	assert.Equal(t, 1, f.SEO.H1Count)
	assert.Equal(t, "Bienvenidos a Tienda Aurora", f.SEO.H1)
	assert.Equal(t, "https://tienda-aurora.example/", f.SEO.Canonical)
	assert.Equal(t, "index, follow", f.SEO.Robots)
	assert.True(t, f.SEO.OpenGraph.Complete())

	assert.True(t, f.Trust.Contact)
	assert.True(t, f.Trust.Shipping)
	assert.True(t, f.Trust.Returns)
	assert.True(t, f.Trust.Privacy)
	assert.True(t, f.Trust.Terms)
	assert.True(t, f.Trust.FAQ)

	assert.True(t, f.UX.HasPrimaryCTA)

	// Malformed JSON-LD block is skipped, the rest are collected and
	// deduplicated.
	assert.ElementsMatch(t, []string{"Product", "Offer", "Organization", "LocalBusiness"}, f.Signals.StructuredData)

	assert.Contains(t, f.Signals.Trackers, "Google Tag Manager")
	assert.True(t, f.Signals.PWAReady)
}

func TestExtractEmptyMarkup(t *testing.T) {
	f := New().Extract("")

	assert.Equal(t, PlatformUnknown, f.Platform)
	assert.Empty(t, f.SEO.Title)
	assert.Empty(t, f.SEO.MetaDesc)
	assert.Zero(t, f.SEO.H1Count)
	assert.False(t, f.SEO.OpenGraph.Complete())
	assert.False(t, f.Trust.Contact)
	assert.False(t, f.Trust.FAQ)
	assert.False(t, f.UX.HasPrimaryCTA)
	assert.Empty(t, f.Signals.StructuredData)
	assert.Empty(t, f.Signals.Trackers)
	assert.False(t, f.Signals.PWAReady)
}

func TestExtractMalformedMarkup(t *testing.T) {
	// Unclosed tags and stray brackets must not fail extraction.
	f := New().Extract(`<html><head><title>Broken</title><body><h1>Oops<a href="/contacto">contacto`)

	require.NotNil(t, f)
	assert.Equal(t, 1, f.SEO.H1Count)
	assert.True(t, f.Trust.Contact)
}

func TestPlatformFirstMatchWins(t *testing.T) {
	markup := `<html><body>
		<script src="https://static.tiendanube.com/app.js"></script>
		<div class="woocommerce-cart"></div>
	</body></html>`

	f := New().Extract(markup)
	assert.Equal(t, "Tiendanube", f.Platform)
}

func TestPlatformUnknown(t *testing.T) {
	f := New().Extract("<html><body><p>hand-rolled site</p></body></html>")
	assert.Equal(t, PlatformUnknown, f.Platform)
}

func TestTitleWhitespaceNormalized(t *testing.T) {
	f := New().Extract("<html><head><title>\n  Spaced \t  Out\n  Title </title></head></html>")
	assert.Equal(t, "Spaced Out Title", f.SEO.Title)
}

func TestMultipleH1(t *testing.T) {
	f := New().Extract("<html><body><h1>First</h1><h1>Second</h1><h1>Third</h1></body></html>")
	assert.Equal(t, 3, f.SEO.H1Count)
	assert.Equal(t, "First", f.SEO.H1)
}

func TestTrustLenientTextFallback(t *testing.T) {
	// No anchors at all; the keyword only appears in running text.
	f := New().Extract("<html><body><p>Consultá nuestra política de privacidad al pie.</p></body></html>")
	assert.True(t, f.Trust.Privacy)
	assert.False(t, f.Trust.Shipping)
}

func TestCTAOnButton(t *testing.T) {
	f := New().Extract(`<html><body><button>Add to cart</button></body></html>`)
	assert.True(t, f.UX.HasPrimaryCTA)
}

func TestNoCTA(t *testing.T) {
	f := New().Extract(`<html><body><a href="/about">About us</a><button>Close</button></body></html>`)
	assert.False(t, f.UX.HasPrimaryCTA)
}

func TestPWARequiresBothSignals(t *testing.T) {
	manifestOnly := `<html><head><link rel="manifest" href="/manifest.json"></head></html>`
	assert.False(t, New().Extract(manifestOnly).Signals.PWAReady)

	workerOnly := `<html><body><script>navigator.serviceWorker.register('/sw.js')</script></body></html>`
	assert.False(t, New().Extract(workerOnly).Signals.PWAReady)
}
