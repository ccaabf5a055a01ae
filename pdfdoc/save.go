// seehuhn.de/go/pdfbarcode - add PDF417 barcodes to the pages of PDF files
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package pdfdoc

import (
	"fmt"
	"io"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"seehuhn.de/go/geom/matrix"

	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"
	"seehuhn.de/go/pdf/graphics/content"
	"seehuhn.de/go/pdf/graphics/content/builder"
	pdfimage "seehuhn.de/go/pdf/graphics/image"
	"seehuhn.de/go/pdf/pagetree"
)

// Producer is stored in the document information dictionary of saved
// files.
const Producer = "seehuhn.de/go/pdfbarcode"

// Save writes the document, including all page overlays, to path.
//
// The output is first written to a temporary file in the same directory,
// which is then renamed to path.  An existing file at path is replaced.
// If an error occurs, path is left untouched.
func (d *Document) Save(path string) error {
	if d.r == nil {
		return &SaveError{Path: path, Err: errClosed}
	}

	fd, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return &SaveError{Path: path, Err: err}
	}
	tmpName := fd.Name()

	err = d.write(fd)
	if err == nil {
		err = fd.Chmod(0o644)
	}
	if closeErr := fd.Close(); err == nil {
		err = closeErr
	}
	if err == nil {
		err = os.Rename(tmpName, path)
	}
	if err != nil {
		os.Remove(tmpName)
		return &SaveError{Path: path, Err: err}
	}
	return nil
}

// write writes the document to out.
//
// Every page is copied.  Pages referenced from elsewhere in the document,
// e.g. from the outline or from annotations, are redirected to the
// copies.
func (d *Document) write(out io.Writer) error {
	metaIn := d.r.GetMeta()

	v := max(metaIn.Version, pdf.V1_4)
	opt := &pdf.WriterOptions{
		DocumentMetadata: metaIn.Catalog.Metadata,
	}
	if keepID(metaIn.ID, v) {
		opt.ID = metaIn.ID
	}
	w, err := pdf.NewWriter(out, v, opt)
	if err != nil {
		return err
	}

	rm := pdf.NewResourceManager(w)
	copier := pdf.NewCopier(w, d.r)

	refs := make([]pdf.Reference, len(d.pages))
	for i, p := range d.pages {
		refs[i] = w.Alloc()
		if p.ref != 0 {
			copier.Redirect(p.ref, refs[i])
		}
	}

	pageTree := pagetree.NewWriter(w, rm)
	for i, p := range d.pages {
		dict, err := p.encode(rm, copier)
		if err != nil {
			return fmt.Errorf("page %d: %w", p.number, err)
		}
		err = pageTree.AppendPageDict(refs[i], dict)
		if err != nil {
			return fmt.Errorf("page %d: %w", p.number, err)
		}
	}
	treeRef, err := pageTree.Close()
	if err != nil {
		return err
	}

	metaOut := w.GetMeta()
	catalog, err := copyCatalog(w, copier, metaIn.Catalog)
	if err != nil {
		return fmt.Errorf("document catalog: %w", err)
	}
	catalog.Pages = treeRef
	catalog.Metadata = metaOut.Catalog.Metadata
	metaOut.Catalog = catalog

	info := &pdf.Info{}
	if metaIn.Info != nil {
		*info = *metaIn.Info
		info.Custom = maps.Clone(metaIn.Info.Custom)
	}
	info.Producer = Producer
	info.ModDate = pdf.Now()
	metaOut.Info = info

	err = rm.Close()
	if err != nil {
		return err
	}
	return w.Close()
}

// keepID reports whether the file identifier of the input can be used for
// the output file.
func keepID(id [][]byte, v pdf.Version) bool {
	if len(id) != 2 {
		return false
	}
	if v >= pdf.V2_0 {
		for _, part := range id {
			if len(part) < 16 {
				return false
			}
		}
	}
	return true
}

// copyCatalog copies all entries of the document catalog, apart from the
// page tree and the metadata stream.
func copyCatalog(w *pdf.Writer, c *pdf.Copier, in *pdf.Catalog) (*pdf.Catalog, error) {
	out := *in
	out.Pages = 0
	out.Metadata = nil

	objects := []*pdf.Object{
		&out.Extensions, &out.PageLabels, &out.Names, &out.Dests,
		&out.ViewerPreferences, &out.OpenAction, &out.AA, &out.URI,
		&out.AcroForm, &out.StructTreeRoot, &out.MarkInfo, &out.SpiderInfo,
		&out.OutputIntents, &out.PieceInfo, &out.OCProperties, &out.Perms,
		&out.Legal, &out.Requirements, &out.Collection, &out.DSS, &out.AF,
		&out.DPartRoot,
	}
	for _, obj := range objects {
		if *obj == nil {
			continue
		}
		native, err := c.Copy((*obj).AsPDF(w.GetOptions()))
		if err != nil {
			return nil, err
		}
		*obj = native
	}

	for _, ref := range []*pdf.Reference{&out.Outlines, &out.Threads} {
		if *ref == 0 {
			continue
		}
		newRef, err := c.CopyReference(*ref)
		if err != nil {
			return nil, err
		}
		*ref = newRef
	}

	return &out, nil
}

// encode returns the page dictionary for the output file.
//
// Modified pages get a private copy of their resource dictionary, which
// adds the images used by the overlays.  The original content streams are
// kept and are enclosed in a q/Q pair, so that the overlays start with the
// default graphics state.
func (p *Page) encode(rm *pdf.ResourceManager, copier *pdf.Copier) (pdf.Dict, error) {
	if !p.Modified() {
		return copier.CopyDict(p.dict)
	}

	dict := maps.Clone(p.dict)
	delete(dict, "Contents")
	delete(dict, "Resources")
	pageOut, err := copier.CopyDict(dict)
	if err != nil {
		return nil, err
	}

	c := pdf.NewCursor(p.doc.r)

	resources, xObjects, err := p.copyResources(c, copier)
	if err != nil {
		return nil, err
	}
	contents, err := p.copyContents(c, copier)
	if err != nil {
		return nil, err
	}

	ops, images, err := p.overlayOps(rm.Out, xObjects)
	if err != nil {
		return nil, err
	}
	for _, name := range slices.Sorted(maps.Keys(images)) {
		ref, err := rm.Embed(images[name])
		if err != nil {
			return nil, err
		}
		xObjects[name] = ref
	}

	push := &content.Operators{
		Ops: []content.Operator{{Name: content.OpPushGraphicsState}},
	}
	pushRef, err := rm.Embed(push)
	if err != nil {
		return nil, err
	}
	ops.Ops = append([]content.Operator{{Name: content.OpPopGraphicsState}}, ops.Ops...)
	overlayRef, err := rm.Embed(ops)
	if err != nil {
		return nil, err
	}

	allContents := make(pdf.Array, 0, len(contents)+2)
	allContents = append(allContents, pushRef)
	allContents = append(allContents, contents...)
	allContents = append(allContents, overlayRef)

	resources["XObject"] = xObjects
	pageOut["Resources"] = resources
	pageOut["Contents"] = allContents
	return pageOut, nil
}

// copyResources copies the resource dictionary of the page.  The returned
// XObject dictionary is a direct object inside the resource dictionary and
// can be extended by the caller.
func (p *Page) copyResources(c pdf.Cursor, copier *pdf.Copier) (pdf.Dict, pdf.Dict, error) {
	resIn, err := c.Dict(p.dict["Resources"])
	if pdf.IsReadError(err) {
		return nil, nil, err
	}
	xObjectsIn, err := c.Dict(resIn["XObject"])
	if pdf.IsReadError(err) {
		return nil, nil, err
	}

	resIn = maps.Clone(resIn)
	delete(resIn, "XObject")
	resources, err := copier.CopyDict(resIn)
	if err != nil {
		return nil, nil, err
	}
	xObjects, err := copier.CopyDict(xObjectsIn)
	if err != nil {
		return nil, nil, err
	}
	return resources, xObjects, nil
}

// copyContents copies the content streams of the page and returns
// references to the copies, in order.
func (p *Page) copyContents(c pdf.Cursor, copier *pdf.Copier) (pdf.Array, error) {
	obj := p.dict["Contents"]
	if ref, ok := obj.(pdf.Reference); ok {
		val, err := c.Resolve(ref)
		if pdf.IsReadError(err) {
			return nil, err
		}
		if _, isArray := val.(pdf.Array); !isArray {
			newRef, err := copier.CopyReference(ref)
			if err != nil {
				return nil, err
			}
			return pdf.Array{newRef}, nil
		}
	}

	a, err := c.Array(obj)
	if pdf.IsReadError(err) {
		return nil, err
	}
	var res pdf.Array
	for _, elem := range a {
		ref, ok := elem.(pdf.Reference)
		if !ok {
			continue
		}
		newRef, err := copier.CopyReference(ref)
		if err != nil {
			return nil, err
		}
		res = append(res, newRef)
	}
	return res, nil
}

// overlayOps returns the content stream which draws the overlays of the
// page, together with the image XObjects it refers to.  New resource names
// are chosen so that they do not clash with the names in used.
func (p *Page) overlayOps(w *pdf.Writer, used pdf.Dict) (*content.Operators, map[pdf.Name]*pdfimage.Dict, error) {
	res := &content.Resources{
		XObject: make(map[pdf.Name]graphics.XObject),
	}
	images := make([]*pdfimage.Dict, len(p.overlays))
	names := make(map[pdf.Name]*pdfimage.Dict)
	k := 0
	for i, o := range p.overlays {
		if o.img == nil {
			continue
		}
		img, err := pdfimage.PNG(o.img, color.SpaceDeviceRGB)
		if err != nil {
			return nil, nil, err
		}
		var name pdf.Name
		for {
			k++
			name = pdf.Name(fmt.Sprintf("Bc%d", k))
			if _, clash := used[name]; !clash {
				break
			}
		}
		images[i] = img
		names[name] = img
		res.XObject[name] = img
	}

	b := builder.New(content.Page, res, pdf.GetVersion(w))
	for i, o := range p.overlays {
		r := p.toUser(o.r)
		b.PushGraphicsState()
		if images[i] == nil {
			b.SetFillColor(color.DeviceRGB{1, 1, 1})
			b.Rectangle(r.LLx, r.LLy, r.Dx(), r.Dy())
			b.Fill()
		} else {
			b.Transform(matrix.Matrix{r.Dx(), 0, 0, r.Dy(), r.LLx, r.LLy})
			b.DrawXObject(images[i])
		}
		b.PopGraphicsState()
	}
	ops, err := b.Harvest()
	if err != nil {
		return nil, nil, err
	}
	return ops, names, nil
}
