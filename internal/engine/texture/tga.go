package texture

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

const (
	tgaHeaderSize = 18

	tgaTrueColor    = 2
	tgaTrueColorRLE = 10

	tgaTopToBottom = 0x20
)

var errTGATruncated = errors.New("tga: pixel data truncated")

// DecodeTGA decodes an uncompressed or RLE true-color TGA with 24 or 32 bits
// per pixel.
func DecodeTGA(data []byte) (*image.RGBA, error) {
	if len(data) < tgaHeaderSize {
		return nil, fmt.Errorf("tga: header needs %d bytes, got %d", tgaHeaderSize, len(data))
	}

	idLength := int(data[0])
	if data[1] != 0 {
		return nil, fmt.Errorf("tga: color-mapped images are not supported")
	}
	kind := data[2]
	if kind != tgaTrueColor && kind != tgaTrueColorRLE {
		return nil, fmt.Errorf("tga: unsupported image type %d", kind)
	}
	width := int(data[12]) | int(data[13])<<8
	height := int(data[14]) | int(data[15])<<8
	bpp := int(data[16])
	if bpp != 24 && bpp != 32 {
		return nil, fmt.Errorf("tga: unsupported bit depth %d", bpp)
	}

	start := tgaHeaderSize + idLength
	if start > len(data) {
		return nil, errTGATruncated
	}

	d := tgaDecoder{
		src:         data[start:],
		img:         image.NewRGBA(image.Rect(0, 0, width, height)),
		width:       width,
		height:      height,
		stride:      bpp / 8,
		topToBottom: data[17]&tgaTopToBottom != 0,
	}

	var err error
	if kind == tgaTrueColor {
		err = d.raw(width * height)
	} else {
		err = d.rle()
	}
	if err != nil {
		return nil, err
	}
	return d.img, nil
}

type tgaDecoder struct {
	src         []byte
	pos         int
	img         *image.RGBA
	width       int
	height      int
	stride      int
	topToBottom bool
	pixel       int
}

// next reads one BGR(A) pixel.
func (d *tgaDecoder) next() (color.RGBA, error) {
	if d.pos+d.stride > len(d.src) {
		return color.RGBA{}, errTGATruncated
	}
	p := d.src[d.pos : d.pos+d.stride]
	d.pos += d.stride
	c := color.RGBA{R: p[2], G: p[1], B: p[0], A: 255}
	if d.stride == 4 {
		c.A = p[3]
	}
	return c, nil
}

// put writes c at the current pixel. Rows are stored bottom-up unless the
// descriptor says otherwise.
func (d *tgaDecoder) put(c color.RGBA) {
	x, y := d.pixel%d.width, d.pixel/d.width
	if !d.topToBottom {
		y = d.height - 1 - y
	}
	d.img.SetRGBA(x, y, c)
	d.pixel++
}

func (d *tgaDecoder) raw(n int) error {
	total := d.width * d.height
	for range n {
		if d.pixel >= total {
			return nil
		}
		c, err := d.next()
		if err != nil {
			return err
		}
		d.put(c)
	}
	return nil
}

func (d *tgaDecoder) rle() error {
	total := d.width * d.height
	for d.pixel < total {
		if d.pos >= len(d.src) {
			return errTGATruncated
		}
		header := d.src[d.pos]
		d.pos++
		count := int(header&0x7f) + 1

		if header&0x80 == 0 {
			if err := d.raw(count); err != nil {
				return err
			}
			continue
		}

		c, err := d.next()
		if err != nil {
			return err
		}
		for range count {
			if d.pixel >= total {
				break
			}
			d.put(c)
		}
	}
	return nil
}
