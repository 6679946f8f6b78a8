package qoi

// pixelCache is the running array of previously seen pixels. A slot holds
// the last pixel inserted with its hash; the zero value is all transparent black.
type pixelCache [cacheSize]Pixel

func (c *pixelCache) lookup(index byte) Pixel {
	return c[index&payloadMask]
}

func (c *pixelCache) insert(pixel Pixel) {
	c[hashColor(pixel)] = pixel
}
