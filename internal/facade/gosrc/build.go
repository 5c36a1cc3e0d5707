package gosrc

import (
	"go/ast"
	"go/types"
	"reflect"
	"strconv"
	"strings"

	"golang.org/x/tools/go/packages"

	"github.com/Litote/kgenerator/pkg/element"
)

type builder struct {
	u       *Universe
	filters []TagFilter
	funcs   map[*types.Func]*ast.FuncDecl
	pkgs    map[string]*types.Package
}

// declared is a struct type found during the first pass.
type declared struct {
	el   *Element
	obj  *types.TypeName
	spec *ast.TypeSpec
	doc  *ast.CommentGroup
	file *ast.File
	pkg  *packages.Package
}

func newBuilder(n *namer, filters []TagFilter) *builder {
	return &builder{
		u: &Universe{
			classes:    map[*types.TypeName]*Element{},
			interfaces: map[string]*types.Interface{},
			namer:      n,
		},
		filters: filters,
		funcs:   map[*types.Func]*ast.FuncDecl{},
		pkgs:    map[string]*types.Package{},
	}
}

func (b *builder) build(pkgs []*packages.Package) *Universe {
	var found []declared
	for _, pkg := range pkgs {
		b.pkgs[pkg.PkgPath] = pkg.Types
		for _, f := range pkg.Syntax {
			found = append(found, b.declare(pkg, f)...)
		}
	}
	for _, pkg := range pkgs {
		for _, f := range pkg.Syntax {
			b.packageDirectives(pkg, f)
		}
	}
	for _, d := range found {
		b.fill(d)
	}
	return b.u
}

// declare registers the struct types of f and records its functions and interfaces.
func (b *builder) declare(pkg *packages.Package, f *ast.File) []declared {
	var out []declared
	for _, decl := range f.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			if fn, ok := pkg.TypesInfo.Defs[d.Name].(*types.Func); ok {
				b.funcs[fn] = d
			}
		case *ast.GenDecl:
			for _, spec := range d.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}
				obj, ok := pkg.TypesInfo.Defs[ts.Name].(*types.TypeName)
				if !ok || obj.IsAlias() {
					continue
				}
				switch u := obj.Type().Underlying().(type) {
				case *types.Interface:
					b.u.interfaces[b.qualified(obj)] = u
				case *types.Struct:
					el := &Element{
						kind:      element.KindClass,
						name:      obj.Name(),
						namespace: b.u.namer.Namespace(pkg.PkgPath),
						modifiers: visibility(obj.Exported()),
					}
					b.u.classes[obj] = el
					b.u.decls = append(b.u.decls, el)
					doc := ts.Doc
					if doc == nil && !d.Lparen.IsValid() {
						doc = d.Doc
					}
					out = append(out, declared{el: el, obj: obj, spec: ts, doc: doc, file: f, pkg: pkg})
				}
			}
		}
	}
	return out
}

// packageDirectives declares a package holder when the package clause carries directives.
// Holders are named after their namespace.
func (b *builder) packageDirectives(pkg *packages.Package, f *ast.File) {
	ds := directives(f.Doc)
	if len(ds) == 0 {
		return
	}
	b.u.decls = append(b.u.decls, &Element{
		kind:        element.KindPackage,
		name:        b.u.namer.Namespace(pkg.PkgPath),
		annotations: b.annotations(ds, pkg, f),
	})
}

func (b *builder) fill(d declared) {
	d.el.typ = b.typeOf(d.obj.Type())
	d.el.annotations = b.annotations(directives(d.doc), d.pkg, d.file)

	st := d.obj.Type().Underlying().(*types.Struct)
	var fields []*ast.Field
	if s, ok := d.spec.Type.(*ast.StructType); ok {
		fields = astFields(s)
	}
	for i := range st.NumFields() {
		var af *ast.Field
		if i < len(fields) {
			af = fields[i]
		}
		d.el.add(b.field(st.Field(i), st.Tag(i), af, d))
	}

	if ctor := b.constructor(d); ctor != nil {
		d.el.add(ctor)
	}

	mset := types.NewMethodSet(types.NewPointer(d.obj.Type()))
	for i := range mset.Len() {
		sel := mset.At(i)
		fn, ok := sel.Obj().(*types.Func)
		if !ok || len(sel.Index()) != 1 {
			continue
		}
		d.el.add(b.function(element.KindMethod, fn, d))
	}
}

func (b *builder) field(v *types.Var, tag string, af *ast.Field, d declared) *Element {
	var ds []directive
	if af != nil {
		ds = directives(af.Doc, af.Comment)
	}
	mods := visibility(v.Exported())
	if transientTag(reflect.StructTag(tag), b.filters) || hasDirective(ds, "Transient") {
		mods = append(mods, element.ModifierTransient)
	}
	return &Element{
		kind:        element.KindField,
		name:        v.Name(),
		modifiers:   mods,
		typ:         b.typeOf(v.Type()),
		annotations: b.annotations(ds, d.pkg, d.file),
	}
}

// constructor finds New<Type> returning the type or a pointer to it.
func (b *builder) constructor(d declared) *Element {
	fn, ok := d.pkg.Types.Scope().Lookup("New" + d.obj.Name()).(*types.Func)
	if !ok {
		return nil
	}
	res := fn.Type().(*types.Signature).Results()
	if res.Len() == 0 {
		return nil
	}
	t := res.At(0).Type()
	if p, ok := t.(*types.Pointer); ok {
		t = p.Elem()
	}
	if n, ok := t.(*types.Named); !ok || n.Obj() != d.obj {
		return nil
	}
	return b.function(element.KindConstructor, fn, d)
}

func (b *builder) function(kind element.Kind, fn *types.Func, d declared) *Element {
	sig := fn.Type().(*types.Signature)
	el := &Element{
		kind:      kind,
		name:      fn.Name(),
		modifiers: visibility(fn.Exported()),
	}
	if decl, ok := b.funcs[fn]; ok {
		el.annotations = b.annotations(directives(decl.Doc), d.pkg, d.file)
	}
	if sig.Results().Len() > 0 {
		el.typ = b.typeOf(sig.Results().At(0).Type())
	} else {
		el.typ = &Type{u: b.u, shape: element.ShapePlain, name: VoidName}
	}
	for i := range sig.Params().Len() {
		p := sig.Params().At(i)
		param := &Element{kind: element.KindParameter, name: p.Name(), typ: b.typeOf(p.Type()), owner: el}
		el.params = append(el.params, param)
	}
	return el
}

// typeOf maps a Go type to an occurrence. Pointers carry the nullable marker, []byte is an
// array, other slices and maps are parameterized by their element types.
func (b *builder) typeOf(t types.Type) *Type {
	switch x := t.(type) {
	case *types.Alias:
		if x.Obj().Pkg() == nil {
			return b.plain(x.Obj().Name(), t, nil)
		}
		return b.typeOf(types.Unalias(x))
	case *types.Pointer:
		return b.typeOf(x.Elem()).annotated(nullable())
	case *types.Slice:
		if isByte(x.Elem()) {
			return &Type{u: b.u, gt: t, shape: element.ShapeArray, elem: b.typeOf(x.Elem())}
		}
		return &Type{u: b.u, gt: t, shape: element.ShapeParameterized, name: SliceName, args: []element.Type{b.typeOf(x.Elem())}}
	case *types.Array:
		return &Type{u: b.u, gt: t, shape: element.ShapeArray, elem: b.typeOf(x.Elem())}
	case *types.Map:
		return &Type{u: b.u, gt: t, shape: element.ShapeParameterized, name: MapName,
			args: []element.Type{b.typeOf(x.Key()), b.typeOf(x.Elem())}}
	case *types.Named:
		obj := x.Obj()
		if targs := x.TypeArgs(); targs.Len() > 0 {
			args := make([]element.Type, 0, targs.Len())
			for i := range targs.Len() {
				args = append(args, b.typeOf(targs.At(i)))
			}
			return &Type{u: b.u, gt: t, obj: obj, shape: element.ShapeParameterized, name: b.qualified(obj), args: args}
		}
		return b.plain(b.qualified(obj), t, obj)
	case *types.Basic:
		return b.plain(x.Name(), t, nil)
	case *types.Interface:
		return b.plain(AnyName, t, nil)
	case *types.TypeParam:
		return b.plain(x.Obj().Name(), t, nil)
	}
	return b.plain(types.TypeString(t, func(p *types.Package) string { return b.u.namer.Namespace(p.Path()) }), t, nil)
}

func (b *builder) plain(name string, t types.Type, obj *types.TypeName) *Type {
	return &Type{u: b.u, gt: t, obj: obj, shape: element.ShapePlain, name: name}
}

func (b *builder) qualified(obj *types.TypeName) string {
	if obj.Pkg() == nil {
		return obj.Name()
	}
	return b.u.namer.Namespace(obj.Pkg().Path()) + "." + obj.Name()
}

func (b *builder) annotations(ds []directive, pkg *packages.Package, f *ast.File) []element.Annotation {
	out := make([]element.Annotation, 0, len(ds))
	for _, d := range ds {
		values := make(map[string]any, len(d.attrs))
		for k, v := range d.attrs {
			values[k] = scalar(v)
		}
		if names, ok := d.typeNames(); ok {
			ts := make([]element.Type, 0, len(names))
			for _, n := range names {
				ts = append(ts, b.resolve(n, pkg, f))
			}
			values[TypesAttr] = ts
		}
		out = append(out, element.NewAnnotation(element.AnnotationKind(d.kind()), values))
	}
	return out
}

// resolve finds the type named n from file f: a bare name of pkg, a name qualified by an
// import of f, or a name qualified by a full import path. Unknown names resolve to a plain
// occurrence without declaration.
func (b *builder) resolve(n string, pkg *packages.Package, f *ast.File) element.Type {
	scope := pkg.Types.Scope()
	name := n
	if i := strings.LastIndex(n, "."); i >= 0 {
		qual := n[:i]
		name = n[i+1:]
		scope = nil
		if p := b.importedAs(qual, pkg, f); p != nil {
			scope = p.Scope()
		}
	}
	if scope != nil {
		if obj, ok := scope.Lookup(name).(*types.TypeName); ok {
			return b.typeOf(obj.Type())
		}
	}
	return &Type{u: b.u, shape: element.ShapePlain, name: n}
}

func (b *builder) importedAs(qual string, pkg *packages.Package, f *ast.File) *types.Package {
	for _, imp := range f.Imports {
		path, err := strconv.Unquote(imp.Path.Value)
		if err != nil {
			continue
		}
		local := ""
		if imp.Name != nil {
			local = imp.Name.Name
		} else if ip, ok := pkg.Imports[path]; ok {
			local = ip.Name
		}
		if local == qual {
			if ip, ok := pkg.Imports[path]; ok {
				return ip.Types
			}
		}
	}
	if p, ok := b.pkgs[qual]; ok {
		return p
	}
	if ip, ok := pkg.Imports[qual]; ok {
		return ip.Types
	}
	return nil
}

func nullable() element.Annotation {
	return element.NewAnnotation(element.KgenNullable, nil)
}

func visibility(exported bool) element.Modifiers {
	if exported {
		return element.Modifiers{element.ModifierPublic}
	}
	return element.Modifiers{element.ModifierPrivate}
}

func isByte(t types.Type) bool {
	bt, ok := t.(*types.Basic)
	return ok && bt.Kind() == types.Byte
}

func hasDirective(ds []directive, name string) bool {
	for _, d := range ds {
		if d.name == name {
			return true
		}
	}
	return false
}

func astFields(st *ast.StructType) []*ast.Field {
	var out []*ast.Field
	for _, f := range st.Fields.List {
		n := max(len(f.Names), 1)
		for range n {
			out = append(out, f)
		}
	}
	return out
}
