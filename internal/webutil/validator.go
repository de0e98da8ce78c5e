package webutil

import (
	"errors"
	"log"
	"reflect"
	"strings"

	"study_cards/internal/model"

	"github.com/go-playground/locales/ja"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	ja_translations "github.com/go-playground/validator/v10/translations/ja"
)

// Validator はアプリケーション全体で共有するバリデータ
var Validator *validator.Validate

// Trans はバリデーションエラーの翻訳に使う
var Trans ut.Translator

var fieldNameTranslations = map[string]string{
	"item_id":    "アイテムID",
	"item_kind":  "アイテムの種類",
	"is_correct": "回答の正誤",
}

func init() {
	Validator = validator.New()

	// エラーのフィールド名はJSONタグの名前を使う
	Validator.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	japanese := ja.New()
	uni := ut.New(japanese, japanese)
	var found bool
	Trans, found = uni.GetTranslator("ja")
	if !found {
		log.Fatal("translator not found")
	}
	if err := ja_translations.RegisterDefaultTranslations(Validator, Trans); err != nil {
		log.Fatal(err)
	}

	registerTranslation("required", "{0}は必須項目です。")
	registerTranslation("uuid", "{0}はUUID形式で指定してください。")
	registerTranslation("oneof", "{0}は{1}のいずれかを指定してください。")
}

// registerTranslation はフィールド名を日本語に置き換えるメッセージを登録する。
// テンプレートの {1} にはタグのパラメータが入る
func registerTranslation(tag, msg string) {
	err := Validator.RegisterTranslation(tag, Trans, func(ut ut.Translator) error {
		return ut.Add(tag, msg, true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		name, ok := fieldNameTranslations[fe.Field()]
		if !ok {
			name = fe.Field()
		}
		t, _ := ut.T(tag, name, strings.ReplaceAll(fe.Param(), " ", ", "))
		return t
	})
	if err != nil {
		log.Fatal(err)
	}
}

// ValidateStruct は s を検証し、最初のエラーを翻訳済みの AppError にして返す
func ValidateStruct(s interface{}) error {
	err := Validator.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) && len(validationErrors) > 0 {
		first := validationErrors[0]
		return model.NewAppError("VALIDATION_ERROR", first.Translate(Trans), first.Field(), model.ErrInvalidInput)
	}
	return model.NewAppError("VALIDATION_ERROR", "入力値が正しくありません。", "", model.ErrInvalidInput)
}
