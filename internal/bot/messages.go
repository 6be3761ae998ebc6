package bot

import (
	"fmt"

	tgbot "github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/navrex0/roastbot/internal/domain"
)

// All user-visible copy lives here. The Indonesian street slang is the
// bot's persona; changing the wording changes the product.
const (
	// msgTextReceived acknowledges an incoming copywriting text.
	msgTextReceived = "Copywriting lo udah gue terima nih! jangan kabur lo!"

	// msgImageReceived acknowledges an incoming copywriting image.
	msgImageReceived = "Gambar copywriting lo udah gue terima nih! Bentar ya, lagi gue bedah... 🧐"

	// msgEmptyText nudges users who sent nothing to roast.
	msgEmptyText = "Eh, kirimin dulu dong teks copywriting yang mau di-roast!"

	// msgSpeechless is the reply when the model answers with no content.
	msgSpeechless = "Hmm, API speechless... copywriting lo terlalu bagus (atau terlalu parah?)! Coba kirim yang lain deh."

	// msgAccountNotFound is the reply when account stats cannot be loaded.
	msgAccountNotFound = "Waduh, data akun kamu nggak ketemu di database! 😫 Coba /start dulu ya, atau mungkin ada error di database."

	// msgModeSpicy confirms the switch to spicy mode. HTML parse mode.
	msgModeSpicy = "Oke! Mode bot sekarang di <strong>Roast Pedas</strong> 🔥 siap nyinyir abis-abisan! Kirimin copywriting lo, siap-siap di-roast tanpa ampun! 😂"

	// msgModeSolution confirms the switch to solution mode. HTML parse mode.
	msgModeSolution = "Sip! Mode bot ganti ke <strong>Roast Berfaedah</strong> 👍. Gue bakal tetep roast copywriting lo, tapi gue kasih juga masukan yang <strong>berfaedah</strong> dikit. Kirim copywriting lo, mari kita bedah! 😎"
)

// msgAbout describes the bot and its creator. HTML parse mode, sent with
// link previews disabled so the donation link stays a plain link.
const msgAbout = `Hai gaes! 👋 Gue adalah bot Telegram yang siap ngeroast copywriting lo sampe gosong! 🔥

Bot ini gue bikin buat hiburan semata ya, jangan baper kalo roast-nya kepedesan!

Nih kreator-nya, @navrex0 🔥

Kalo lo suka sama roast-roast yang pedas ini, dan pengen gue terus semangat ngembangin bot ini, boleh banget nih kasih dukungan ke link Trakteer gue di bawah ini 👇👇

<a href="https://trakteer.id/ervankurniawan41/tip">https://trakteer.id/ervankurniawan41/tip</a>

Makasih banyak ya buat supportnya! 🙏 Semoga skill copywriting lo makin mantep setelah di-roast sama gue dan rejeki lo lancar! 🔥🔥🔥`

// fallbackText is the canned roast delivered when every text generation
// attempt failed.
const fallbackText = `Waduh, mesin roasting gue lagi error berat nih! 😫

Tapi tenang, gue tetep kasih roast spesial buat lo:

"Hmm, copywriting lo... unik juga ya. Lain dari yang lain. Pokoknya... jangan semangat & jangan berkarya!" 😉

Ini roast darurat ya, lain kali gue roast beneran deh kalo otak gue udah bener. Coba lagi!`

// fallbackImage is the canned roast delivered when every image generation
// attempt failed.
const fallbackImage = `Waduh, mesin roast gambar gue lagi error berat nih! 😭

Tapi tenang, gue tetep kasih roast spesial buat gambar lo:

"Hmm, gambar copywriting lo... menarik juga ya. Visualnya... lain dari yang lain. Pokoknya... jangan semangat & jangan berkarya!" 😉

Ini roast darurat gambar ya, lain kali gue roast beneran deh kalo otak gue udah bener. Coba lagi ya!`

// welcomeTemplate is MarkdownV2: the backslashes escape reserved characters.
// The placeholders take a prebuilt inline mention and the description of the
// current mode.
const welcomeTemplate = "Hai %s 👋\\! Gue Bot Roast Copywriting nih ceritanya\\. Kirimin aja copywriting lo, nanti gue kasih *masukan membangun*\\.\\.\\. atau mungkin gue roast aja sekalian 🔥 biar seru\\.\n\n" +
	"*Mode Bot:*\n" +
	"Saat ini gue lagi di mode *%s* \\(default\\), yang artinya gue bakal roast copywriting lo sebegala rupa tanpa ampun, fokusnya buat hiburan aja 😂\\.\n\n" +
	"Kalo lo pengen masukan yang lebih *berfaedah* \\(tetep di\\-roast dikit sih 😜\\), lo bisa ganti mode gue ke *Roast Berfaedah* dengan perintah:  `/mode_solusi`\n\n" +
	"Gue juga bisa roasting gambar/desain lo\\!\n\n" +
	"Buat balik lagi ke mode awal *Roast Pedas*, pake perintah: `/mode_pedas`\n\n" +
	"Udah siap di\\-roast? Kirim copywriting lo sekarang\\!"

// accountInfoTemplate renders usage statistics. Legacy Markdown parse mode.
const accountInfoTemplate = `👤 *Hi, %s* 👤

📊 *Statistik Penggunaan Bot* 📊
- Roast Teks Copywriting: *%d kali*
- Roast Gambar Copywriting: *%d kali*

🔥 Semangat jadi korban roasting! 🔥`

// ModeDescription returns the human name of a mode as shown in messages.
func ModeDescription(mode domain.Mode) string {
	if mode == domain.ModeSolution {
		return "Roast Berfaedah"
	}
	return "Roast Pedas"
}

// welcomeMessage renders the /start reply for the given mention and mode.
func welcomeMessage(mention string, mode domain.Mode) string {
	return fmt.Sprintf(welcomeTemplate, mention, ModeDescription(mode))
}

// accountInfoMessage renders the /info_akun reply.
func accountInfoMessage(username string, usageCount, imageUsageCount int) string {
	return fmt.Sprintf(accountInfoTemplate, username, usageCount, imageUsageCount)
}

// userMention builds a MarkdownV2 inline mention that works even for users
// without a public username.
func userMention(user *models.User) string {
	name := user.FirstName
	if user.LastName != "" {
		name += " " + user.LastName
	}
	if name == "" {
		name = user.Username
	}
	return fmt.Sprintf("[%s](tg://user?id=%d)", tgbot.EscapeMarkdown(name), user.ID)
}

// processingMessage is the status text while an attempt is in flight.
// Legacy Markdown parse mode.
func processingMessage(mode domain.Mode) string {
	return fmt.Sprintf("Wait, bahan lo lagi digoreng master chef pake mode *%s*! 🔥", mode)
}

// retryMessage is the status text between failed attempts. Sent without a
// parse mode, so the asterisks show up literally.
func retryMessage(mode domain.Mode, attempt int) string {
	return fmt.Sprintf("Waduh, mesin roasting mode *%s* kayaknya lagi ngambek dikit... 😪\nGue coba sekali lagi ya... (percobaan ke-%d)", mode, attempt)
}

// exhaustedMessage is the status text after the last attempt failed.
// Legacy Markdown parse mode.
func exhaustedMessage(mode domain.Mode) string {
	return fmt.Sprintf("Waduh, mesin roasting mode *%s* lagi ngambek! 😭 Sabar ya, lagi diperbaiki nih...", mode)
}
