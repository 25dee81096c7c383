// Package cognitive computes SonarSource-style Cognitive Complexity for C
// and Java using tree-sitter concrete syntax trees.
package cognitive

import (
	"context"
	"fmt"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/c"
	"github.com/smacker/go-tree-sitter/java"
)

// Calculator computes cognitive complexity per function/method in a source
// file, grounded node-type-by-node-type on
// original_source/src/kpis/cognitive_complexity/calculator_{c,java}.py.
type Calculator struct {
	language          *sitter.Language
	increments        map[string]int
	nestingIncrements map[string]bool
	bodyNodeType      string
	declarationTypes  map[string]bool
	stopAtNestedFunc  bool
}

// NewCCalculator builds the C cognitive complexity calculator.
func NewCCalculator() *Calculator {
	return &Calculator{
		language: c.GetLanguage(),
		increments: map[string]int{
			"if_statement":           1,
			"for_statement":          1,
			"while_statement":        1,
			"do_statement":           1,
			"case_statement":         1,
			"conditional_expression": 1,
			"goto_statement":         1,
		},
		nestingIncrements: map[string]bool{
			"function_definition": true,
			"if_statement":        true,
			"for_statement":       true,
			"while_statement":     true,
			"do_statement":        true,
		},
		bodyNodeType:     "compound_statement",
		declarationTypes: map[string]bool{"function_definition": true},
		stopAtNestedFunc: true,
	}
}

// NewJavaCalculator builds the Java cognitive complexity calculator.
func NewJavaCalculator() *Calculator {
	return &Calculator{
		language: java.GetLanguage(),
		increments: map[string]int{
			"if_statement":            1,
			"for_statement":           1,
			"enhanced_for_statement":  1,
			"while_statement":         1,
			"do_statement":            1,
			"switch_label":            1,
			"catch_clause":            1,
			"ternary_expression":      1,
		},
		nestingIncrements: map[string]bool{
			"method_declaration":      true,
			"constructor_declaration": true,
			"if_statement":            true,
			"for_statement":           true,
			"enhanced_for_statement":  true,
			"while_statement":         true,
			"do_statement":            true,
			"switch_statement":        true,
			"catch_clause":            true,
			"lambda_expression":       true,
			"class_declaration":       true,
		},
		bodyNodeType: "block",
		declarationTypes: map[string]bool{
			"method_declaration":      true,
			"constructor_declaration": true,
		},
		stopAtNestedFunc: false,
	}
}

// FunctionComplexity maps a function or method name to its cognitive
// complexity.
type FunctionComplexity struct {
	Name       string
	Complexity int
}

// Calculate parses source and returns the cognitive complexity of every
// function/method declaration it contains.
func (c *Calculator) Calculate(ctx context.Context, source []byte) ([]FunctionComplexity, error) {
	parser := sitter.NewParser()
	parser.SetLanguage(c.language)

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("cognitive: parse failed: %w", err)
	}
	if tree == nil {
		return nil, fmt.Errorf("cognitive: parser returned no tree")
	}
	defer tree.Close()

	var declarations []*sitter.Node
	c.findDeclarations(tree.RootNode(), &declarations)

	results := make([]FunctionComplexity, 0, len(declarations))
	for _, decl := range declarations {
		results = append(results, FunctionComplexity{
			Name:       c.declarationName(decl, source),
			Complexity: c.complexityOf(decl, source),
		})
	}
	return results, nil
}

func (c *Calculator) findDeclarations(node *sitter.Node, out *[]*sitter.Node) {
	if c.declarationTypes[node.Type()] {
		*out = append(*out, node)
	}
	for i := 0; i < int(node.ChildCount()); i++ {
		c.findDeclarations(node.Child(i), out)
	}
}

func (c *Calculator) declarationName(node *sitter.Node, source []byte) string {
	var name string
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if name != "" {
			return
		}
		if n.Type() == "identifier" {
			name = n.Content(source)
			return
		}
		if n.Type() == "function_declarator" {
			for i := 0; i < int(n.ChildCount()); i++ {
				walk(n.Child(i))
			}
			return
		}
		if n.Type() != "function_definition" && n.Type() != "method_declaration" &&
			n.Type() != "constructor_declaration" {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(node)
	if name == "" {
		return "anonymous"
	}
	return name
}

func (c *Calculator) body(declNode *sitter.Node) *sitter.Node {
	for i := 0; i < int(declNode.ChildCount()); i++ {
		child := declNode.Child(i)
		if child.Type() == c.bodyNodeType {
			return child
		}
	}
	return nil
}

func (c *Calculator) complexityOf(declNode *sitter.Node, source []byte) int {
	body := c.body(declNode)
	if body == nil {
		return 0
	}

	complexity := 0

	var traverse func(node *sitter.Node, nesting int)
	traverse = func(node *sitter.Node, nesting int) {
		if c.stopAtNestedFunc && node != body && node.Type() == "function_definition" {
			return
		}

		if inc, ok := c.increments[node.Type()]; ok {
			if node.Type() == "goto_statement" {
				complexity += inc
			} else {
				complexity += inc + nesting
			}
		}

		if node.Type() == "if_statement" {
			for i := 0; i < int(node.ChildCount()); i++ {
				child := node.Child(i)
				if child.Type() == "else_clause" || child.Type() == "else" {
					complexity += 1 + nesting
					break
				}
			}
		}

		if node.Type() == "binary_expression" {
			if isLogicalOperator(node, source) {
				complexity++
			}
		}

		newNesting := nesting
		if c.nestingIncrements[node.Type()] {
			newNesting++
		}

		for i := 0; i < int(node.ChildCount()); i++ {
			traverse(node.Child(i), newNesting)
		}
	}

	traverse(body, 0)
	return complexity
}

func isLogicalOperator(binaryExpr *sitter.Node, source []byte) bool {
	for i := 0; i < int(binaryExpr.ChildCount()); i++ {
		text := binaryExpr.Child(i).Content(source)
		if text == "&&" || text == "||" {
			return true
		}
	}
	return false
}
