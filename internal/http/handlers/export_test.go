package handlers

// PaletteResponse exposes the palette payload shape to the external test package.
type PaletteResponse = paletteResponse
