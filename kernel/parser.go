package kernel

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/rommelDB/PSyclone/report"
)

var stencilDimPattern = regexp.MustCompile(`^[01]{3}$`)

// Parser is a recursive descent parser over a kernel-metadata declaration.
// Every parsing function begins positioned on the first token of its
// production and consumes all of its tokens, leaving the parser on the next
// one.
type Parser struct {
	lexer *Lexer
	tok   Token
}

func newParser(src string) (*Parser, error) {
	p := &Parser{lexer: NewLexer(src)}
	return p, p.next()
}

func (p *Parser) next() error {
	tok, err := p.lexer.NextToken()
	if err != nil {
		return err
	}
	p.tok = tok
	return nil
}

// gotKeyword reports whether the current token is the given keyword,
// compared case-insensitively.
func (p *Parser) gotKeyword(kw string) bool {
	return p.tok.Kind == IDENT && strings.EqualFold(p.tok.Value, kw)
}

func (p *Parser) expect(kind TokenKind) (Token, error) {
	if p.tok.Kind != kind {
		return Token{}, report.Parsef(
			"expected '%s' in kernel metadata at line %d, but found '%s'",
			kind, p.tok.Line, p.tok.Value)
	}

	tok := p.tok
	return tok, p.next()
}

func (p *Parser) expectKeyword(kw string) error {
	if !p.gotKeyword(kw) {
		return report.Parsef(
			"expected '%s' in kernel metadata at line %d, but found '%s'",
			kw, p.tok.Line, p.tok.Value)
	}
	return p.next()
}

// argEntry is one comma-separated entry of a go_arg record before
// classification.
type argEntry struct {
	value   string
	vector  int
	stencil []string
}

func (ae argEntry) String() string {
	if ae.stencil != nil {
		return ae.value + "(" + strings.Join(ae.stencil, ", ") + ")"
	}
	if ae.vector > 1 {
		return ae.value + "*" + strconv.Itoa(ae.vector)
	}
	return ae.value
}

func entriesString(entries []argEntry) string {
	parts := make([]string, len(entries))
	for i, entry := range entries {
		parts[i] = entry.String()
	}
	return "go_arg(" + strings.Join(parts, ", ") + ")"
}

// metadata := 'type' [',' 'extends' '(' IDENT ')'] '::' IDENT
//             component* contains_part 'end' 'type' [IDENT]
func (p *Parser) parseMetadata() (*Metadata, error) {
	meta := &Metadata{}

	if err := p.expectKeyword("type"); err != nil {
		return nil, err
	}
	if p.tok.Kind == COMMA {
		if err := p.next(); err != nil {
			return nil, err
		}
		if err := p.expectKeyword("extends"); err != nil {
			return nil, err
		}
		if _, err := p.expect(LPAREN); err != nil {
			return nil, err
		}
		base, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		meta.extends = base.Value
		if _, err := p.expect(RPAREN); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(DOUBLECOLON); err != nil {
		return nil, err
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	meta.typeName = name.Value

	var foundMetaArgs, foundIteratesOver, foundIndexOffset bool
	for !p.gotKeyword("contains") && !p.gotKeyword("end") && p.tok.Kind != EOF {
		if err := p.parseComponent(meta, &foundMetaArgs, &foundIteratesOver, &foundIndexOffset); err != nil {
			return nil, err
		}
	}

	// Each of the three sections must appear exactly once.
	if !foundMetaArgs {
		return nil, report.Parsef(
			"expecting 'meta_args' to be an entry in the metadata but it was not found")
	}
	if !foundIteratesOver {
		return nil, report.Parsef(
			"expecting 'iterates_over' to be an entry in the metadata but it was not found")
	}
	if !foundIndexOffset {
		return nil, report.Parsef(
			"expecting 'index_offset' to be an entry in the metadata but it was not found")
	}

	if err := p.parseContains(meta); err != nil {
		return nil, err
	}

	if err := p.expectKeyword("end"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("type"); err != nil {
		return nil, err
	}
	if p.tok.Kind == IDENT {
		if err := p.next(); err != nil {
			return nil, err
		}
	}

	return meta, nil
}

// component := 'type' '(' 'go_arg' ')' ',' 'dimension' '(' NUMBER ')'
//              '::' 'meta_args' '=' '(/' go_arg {',' go_arg} '/)'
//            | 'integer' '::' ('iterates_over' | 'index_offset') '=' IDENT
func (p *Parser) parseComponent(meta *Metadata, foundMetaArgs, foundIteratesOver, foundIndexOffset *bool) error {
	switch {
	case p.gotKeyword("type"):
		if *foundMetaArgs {
			return report.Parsef(
				"'meta_args' should only be defined once in the metadata")
		}
		*foundMetaArgs = true
		return p.parseMetaArgs(meta)

	case p.gotKeyword("integer"):
		if err := p.next(); err != nil {
			return err
		}
		if _, err := p.expect(DOUBLECOLON); err != nil {
			return err
		}
		name, err := p.expect(IDENT)
		if err != nil {
			return err
		}
		if _, err := p.expect(ASSIGN); err != nil {
			return err
		}
		value, err := p.expect(IDENT)
		if err != nil {
			return err
		}

		switch strings.ToLower(name.Value) {
		case "iterates_over":
			if *foundIteratesOver {
				return report.Parsef(
					"'iterates_over' should only be defined once in the metadata")
			}
			*foundIteratesOver = true
			if !inSet(validIteratesOver, value.Value) {
				return report.Parsef(
					"the value of 'iterates_over' should be one of %s, but found '%s'",
					setString(validIteratesOver), value.Value)
			}
			meta.iteratesOver = value.Value
		case "index_offset":
			if *foundIndexOffset {
				return report.Parsef(
					"'index_offset' should only be defined once in the metadata")
			}
			*foundIndexOffset = true
			if !inSet(validOffsetNames, value.Value) {
				return report.Parsef(
					"the value of 'index_offset' should be one of %s, but found '%s'",
					setString(validOffsetNames), value.Value)
			}
			meta.indexOffset = value.Value
		default:
			return report.Parsef(
				"expecting metadata entries to be one of 'meta_args', 'iterates_over', or 'index_offset', but found '%s'",
				name.Value)
		}
		return nil

	default:
		return report.Parsef(
			"expecting metadata entries to be one of 'meta_args', 'iterates_over', or 'index_offset', but found '%s'",
			p.tok.Value)
	}
}

func (p *Parser) parseMetaArgs(meta *Metadata) error {
	if err := p.next(); err != nil { // consume 'type'
		return err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}
	if err := p.expectKeyword("go_arg"); err != nil {
		return err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return err
	}
	if _, err := p.expect(COMMA); err != nil {
		return err
	}
	if err := p.expectKeyword("dimension"); err != nil {
		return err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return err
	}
	if _, err := p.expect(NUMBER); err != nil {
		return err
	}
	if _, err := p.expect(RPAREN); err != nil {
		return err
	}
	if _, err := p.expect(DOUBLECOLON); err != nil {
		return err
	}
	name, err := p.expect(IDENT)
	if err != nil {
		return err
	}
	if !strings.EqualFold(name.Value, "meta_args") {
		return report.Parsef(
			"expecting metadata entries to be one of 'meta_args', 'iterates_over', or 'index_offset', but found '%s'",
			name.Value)
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return err
	}
	if _, err := p.expect(ARRAYSTART); err != nil {
		return err
	}

	for {
		arg, err := p.parseArg()
		if err != nil {
			return err
		}
		meta.args = append(meta.args, arg)

		if p.tok.Kind != COMMA {
			break
		}
		if err := p.next(); err != nil {
			return err
		}
	}

	_, err = p.expect(ARRAYEND)
	return err
}

// go_arg := 'go_arg' '(' entry {',' entry} ')'
// entry  := IDENT ['*' NUMBER] | IDENT '(' NUMBER ',' NUMBER ',' NUMBER ')'
func (p *Parser) parseArg() (Arg, error) {
	if err := p.expectKeyword("go_arg"); err != nil {
		return nil, err
	}
	if _, err := p.expect(LPAREN); err != nil {
		return nil, err
	}

	var entries []argEntry
	for {
		entry, err := p.parseArgEntry()
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)

		if p.tok.Kind != COMMA {
			break
		}
		if err := p.next(); err != nil {
			return nil, err
		}
	}
	if _, err := p.expect(RPAREN); err != nil {
		return nil, err
	}

	return classifyArg(entries)
}

func (p *Parser) parseArgEntry() (argEntry, error) {
	ident, err := p.expect(IDENT)
	if err != nil {
		return argEntry{}, err
	}
	entry := argEntry{value: ident.Value, vector: 1}

	switch p.tok.Kind {
	case STAR:
		if err := p.next(); err != nil {
			return argEntry{}, err
		}
		length, err := p.expect(NUMBER)
		if err != nil {
			return argEntry{}, err
		}
		n, convErr := strconv.Atoi(length.Value)
		if convErr != nil || n < 2 {
			return argEntry{}, report.Parsef(
				"the vector length of a field argument must be an integer greater than 1, but found '%s'",
				length.Value)
		}
		entry.vector = n

	case LPAREN:
		if err := p.next(); err != nil {
			return argEntry{}, err
		}
		entry.stencil = []string{}
		for {
			dim, err := p.expect(NUMBER)
			if err != nil {
				return argEntry{}, err
			}
			if !stencilDimPattern.MatchString(dim.Value) {
				return argEntry{}, report.Parsef(
					"stencil entries should follow the pattern [01]{3}, but found '%s'",
					dim.Value)
			}
			entry.stencil = append(entry.stencil, dim.Value)

			if p.tok.Kind != COMMA {
				break
			}
			if err := p.next(); err != nil {
				return argEntry{}, err
			}
		}
		if _, err := p.expect(RPAREN); err != nil {
			return argEntry{}, err
		}
		if len(entry.stencil) != 3 {
			return argEntry{}, report.Parsef(
				"if the metadata entry is a stencil, it should contain 3 arguments, but found %d",
				len(entry.stencil))
		}
	}

	return entry, nil
}

// contains_part := 'contains' 'procedure' [',' 'nopass'] '::' 'code' '=>' IDENT
func (p *Parser) parseContains(meta *Metadata) error {
	if !p.gotKeyword("contains") {
		return report.Parsef(
			"the metadata does not have a contains section (which is required to declare the kernel procedure)")
	}
	if err := p.next(); err != nil {
		return err
	}

	if err := p.expectKeyword("procedure"); err != nil {
		return err
	}
	if p.tok.Kind == COMMA {
		if err := p.next(); err != nil {
			return err
		}
		if err := p.expectKeyword("nopass"); err != nil {
			return err
		}
	}
	if _, err := p.expect(DOUBLECOLON); err != nil {
		return err
	}
	if err := p.expectKeyword("code"); err != nil {
		return err
	}
	if _, err := p.expect(ARROW); err != nil {
		return err
	}
	proc, err := p.expect(IDENT)
	if err != nil {
		return err
	}
	meta.code = proc.Value

	// Exactly one bound procedure is allowed.
	if p.gotKeyword("procedure") {
		return report.Parsef(
			"expecting exactly one procedure binding in the metadata, but found more than one")
	}

	return nil
}

// -----------------------------------------------------------------------------

// classifyArg determines the argument category from the entry count alone:
// 2 entries describe a grid property, 3 a field, and 5 an operator.
func classifyArg(entries []argEntry) (Arg, error) {
	switch len(entries) {
	case 2:
		return makeGridArg(entries)
	case 3:
		return makeFieldArg(entries)
	case 5:
		return makeOperatorArg(entries)
	default:
		return nil, report.Parsef(
			"'meta_args' entries should have 2, 3 or 5 arguments, but found %d in %s",
			len(entries), entriesString(entries))
	}
}

func checkAccessEntry(category string, entry argEntry) (string, error) {
	if entry.stencil != nil || !inSet(validAccesses, entry.value) {
		return "", report.Parsef(
			"the first metadata entry for a %s argument should be one of %s, but found '%s'",
			category, setString(validAccesses), entry.String())
	}
	return entry.value, nil
}

func makeGridArg(entries []argEntry) (*GridArg, error) {
	access, err := checkAccessEntry("grid property", entries[0])
	if err != nil {
		return nil, err
	}

	property := entries[1]
	if property.stencil != nil || property.vector > 1 || !inSet(validGridProperties, property.value) {
		return nil, report.Parsef(
			"the second metadata entry for a grid property argument should be one of %s, but found '%s'",
			setString(validGridProperties), property.String())
	}

	return &GridArg{access: access, property: property.value}, nil
}

func makeFieldArg(entries []argEntry) (*FieldArg, error) {
	access, err := checkAccessEntry("field", entries[0])
	if err != nil {
		return nil, err
	}

	gridPoint := entries[1]
	if gridPoint.stencil != nil || !inSet(validFieldGridTypes, gridPoint.value) {
		return nil, report.Parsef(
			"the second metadata entry for a field argument should be one of %s, but found '%s'",
			setString(validFieldGridTypes), gridPoint.String())
	}
	if gridPoint.vector > 1 && inSet(scalarGridTypes, gridPoint.value) {
		return nil, report.Parsef(
			"a scalar argument cannot have a vector length, but found '%s'",
			gridPoint.String())
	}

	form, stencil, err := checkFormEntry("field", "third", entries[2])
	if err != nil {
		return nil, err
	}

	return &FieldArg{
		access:       access,
		gridPoint:    gridPoint.value,
		vectorLength: gridPoint.vector,
		form:         form,
		stencil:      stencil,
	}, nil
}

func makeOperatorArg(entries []argEntry) (*OperatorArg, error) {
	access, err := checkAccessEntry("operator", entries[0])
	if err != nil {
		return nil, err
	}

	dataType := entries[1]
	if dataType.stencil != nil || dataType.vector > 1 || !inSet(validOperatorDataTypes, dataType.value) {
		return nil, report.Parsef(
			"the second metadata entry for an operator argument should be one of %s, but found '%s'",
			setString(validOperatorDataTypes), dataType.String())
	}

	spaces := [2]string{}
	for i, position := range []string{"third", "fourth"} {
		entry := entries[2+i]
		if entry.stencil != nil || entry.vector > 1 || !inSet(validFunctionSpaces, entry.value) {
			return nil, report.Parsef(
				"the %s metadata entry for an operator argument should be one of %s, but found '%s'",
				position, setString(validFunctionSpaces), entry.String())
		}
		spaces[i] = entry.value
	}

	form, stencil, err := checkFormEntry("operator", "fifth", entries[4])
	if err != nil {
		return nil, err
	}

	return &OperatorArg{
		access:    access,
		dataType:  dataType.value,
		fromSpace: spaces[0],
		toSpace:   spaces[1],
		form:      form,
		stencil:   stencil,
	}, nil
}

// checkFormEntry validates an access-form entry, which is either a named
// pattern or an explicit go_stencil(...).
func checkFormEntry(category, position string, entry argEntry) (string, []string, error) {
	if entry.stencil == nil {
		if !inSet(validStencilNames, entry.value) {
			return "", nil, report.Parsef(
				"the %s metadata entry for a %s argument should be one of %s or 'go_stencil(...)', but found '%s'",
				position, category, setString(validStencilNames), entry.String())
		}
		return entry.value, nil, nil
	}

	if !strings.EqualFold(entry.value, "go_stencil") {
		return "", nil, report.Parsef(
			"the %s metadata entry for a %s argument should be one of %s or 'go_stencil(...)', but found '%s'",
			position, category, setString(validStencilNames), entry.String())
	}
	return entry.value, entry.stencil, nil
}
