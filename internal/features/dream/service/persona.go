package service

import (
	"fmt"
	"strings"

	profilemodels "ruya-backend/internal/features/profile/models"
)

// Persona blocks shaping the interpretation style. Unrecognized or absent
// interpreter types fall back to the psychological persona.
const (
	personaPsychological = "Sen Carl Gustav Jung ekolünü benimsemiş, empatik ve uzman bir psikologsun. " +
		"Rüyaları semboller, arketipler ve duygusal durum açısından analiz edersin. " +
		"Cevabın yapıcı, içgörü dolu ve sohbet havasında olmalı."

	personaReligious = "Sen İslami rüya tabiri geleneğini (İbn-i Sirin ekolü) çok iyi bilen, " +
		"saygılı ve bilge bir rüya yorumcususun. Rüyaları dini semboller, hayır ve hikmet " +
		"penceresinden yorumlarsın. Cevabın huzur verici ve nazik olmalı."

	personaSpiritual = "Sen enerji, sezgi ve ruhsal farkındalık üzerine çalışan mistik bir rehbersin. " +
		"Rüyaları evrenden gelen mesajlar, enerji akışları ve ruhsal gelişim açısından yorumlarsın. " +
		"Cevabın ilham verici ve derin olmalı."
)

// Depth blocks: premium users get the full structured analysis, free users a
// strict short teaser ending in an upgrade call-to-action.
const (
	depthPremium = "Analizi tam derinlikte yap: rüyayı bölümlere ayır, her önemli sembolü tek tek ele al, " +
		"duygusal durumu değerlendir ve sonunda rüya sahibine kişisel bir içgörü sun."

	depthFree = "KISITLAMA: Cevabın en fazla üç cümle olsun. Rüyanın sadece en belirgin sembolüne kısaca değin, " +
		"derin analiz yapma. Son cümlende tam analiz için Premium'a geçmeyi nazikçe öner."
)

// Follow-up instructions for the later pipeline stages. They rely on the
// conversational context carrying the dream from the first turn.
const (
	titleEmotionInstruction = "Bu rüya için çok kısa bir başlık ve rüyadaki baskın duyguyu üret. " +
		"Cevabını SADECE şu formatta ver: Başlık | Duygu. Etiket yazma, açıklama ekleme, " +
		"rüya hangi dildeyse o dilde cevap ver."

	imagePromptInstruction = "Now write a single English image-generation prompt describing the most " +
		"striking scene of this dream: composition, lighting, mood and color palette. " +
		"Respond with the prompt only, no quotes, no extra text."
)

// selectPersona maps the stored interpreter type to a persona block.
func selectPersona(interpreterType string) string {
	switch interpreterType {
	case profilemodels.InterpreterReligious:
		return personaReligious
	case profilemodels.InterpreterSpiritual:
		return personaSpiritual
	default:
		return personaPsychological
	}
}

// selectDepth maps the premium flag to an instruction block.
func selectDepth(isPremium bool) string {
	if isPremium {
		return depthPremium
	}
	return depthFree
}

// BuildAnalysisPrompt assembles the stage-1 prompt: persona, depth mode,
// zodiac context and the dream itself.
func BuildAnalysisPrompt(profile *profilemodels.Profile, dreamText string) string {
	var b strings.Builder

	b.WriteString(selectPersona(profile.InterpreterType))
	b.WriteString("\n\n")
	b.WriteString(selectDepth(profile.IsPremium))

	if profile.Zodiac != "" {
		fmt.Fprintf(&b, "\n\nRüya sahibinin burcu: %s. Yorumunda bunu bağlam olarak kullanabilirsin.", profile.Zodiac)
	}

	fmt.Fprintf(&b, "\n\nŞimdi şu rüyayı yorumla: %s", dreamText)

	return b.String()
}
